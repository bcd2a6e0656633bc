package domain

// Resource tags a family of records gated by the permission table. The set is
// open on purpose: screens name their own families, and unknown ones fall
// back to the role's default tuple.
type Resource string

const (
	ResourceAccounts       Resource = "accounts"
	ResourcePeople         Resource = "people"
	ResourceCondominiums   Resource = "condominiums"
	ResourceDevices        Resource = "devices"
	ResourceServiceOrders  Resource = "service_orders"
	ResourceProblemReports Resource = "problem_reports"
	ResourceAuditLogs      Resource = "audit_logs"
)
