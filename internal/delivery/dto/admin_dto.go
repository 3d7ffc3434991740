package dto

type AdminMetricsResponse struct {
	Users         UserMetrics         `json:"users"`
	Consultations ConsultationMetrics `json:"consultations"`
	Orders        OrderMetrics        `json:"orders"`
	Revenue       RevenueMetrics      `json:"revenue"`
}

type UserMetrics struct {
	Total    int64 `json:"total"`
	Doctors  int64 `json:"doctors"`
	Patients int64 `json:"patients"`
}

type ConsultationMetrics struct {
	Total     int64 `json:"total"`
	Active    int64 `json:"active"`
	Completed int64 `json:"completed"`
}

type OrderMetrics struct {
	Total int64 `json:"total"`
}

type RevenueMetrics struct {
	PlatformFees string `json:"platform_fees"`
}
