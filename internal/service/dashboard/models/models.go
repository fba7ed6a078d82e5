package models

// StatsResponse сводка для главной страницы кабинета сотрудника
type StatsResponse struct {
	Enquiries        map[string]int `json:"enquiries"`
	TotalEnquiries   int            `json:"totalEnquiries"`
	Admissions       map[string]int `json:"admissions"`
	TotalAdmissions  int            `json:"totalAdmissions"`
	PendingReviews   int            `json:"pendingReviews"`
	UpcomingSlots    int            `json:"upcomingSlots"`
	UpcomingBookings int            `json:"upcomingBookings"`
}
