package catalog

import "strings"

// FilterServices returns the services whose name contains the query,
// case-insensitively. An empty query returns the input unchanged.
func FilterServices(services []*ClinicService, query string) []*ClinicService {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return services
	}
	var out []*ClinicService
	for _, s := range services {
		if strings.Contains(strings.ToLower(s.Name), q) {
			out = append(out, s)
		}
	}
	return out
}

// FilterStaff returns the staff whose first name, last name, or
// specialization contains the query, case-insensitively. An empty query
// returns the input unchanged.
func FilterStaff(staff []*Staff, query string) []*Staff {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return staff
	}
	var out []*Staff
	for _, st := range staff {
		spec := ""
		if st.Specialization != nil {
			spec = *st.Specialization
		}
		if strings.Contains(strings.ToLower(st.FirstName), q) ||
			strings.Contains(strings.ToLower(st.LastName), q) ||
			strings.Contains(strings.ToLower(spec), q) {
			out = append(out, st)
		}
	}
	return out
}
