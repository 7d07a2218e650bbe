package constants

const (
	CentsPerUnit = 100
	// MaxAmountCents caps a single amount at R$ 100 bilhões.
	MaxAmountCents = 10_000_000_000_000
	MaxNameLen   = 100

	// Date Layout
	DateFormat     = "2006-01-02"
	DateTimeFormat = "2006-01-02 15:04"
)

const (
	PageSize     = 25
	RecentLimit  = 5
	SummaryDays  = 30
	KindCacheKey = "kinds"
)

const (
	LabelInflow  = "Entradas"
	LabelOutflow = "Saídas"
	LabelNoData  = "Sem dados"

	ColorNeutral = "#e5e7eb"
)

var InflowPalette = []string{"#16a34a", "#22c55e", "#4ade80", "#86efac"}

var OutflowPalette = []string{"#dc2626", "#ef4444", "#f87171", "#fca5a5"}

const (
	AttachmentBucket = "transaction-files"
	ContentTypePDF   = "application/pdf"
	ContentTypePNG   = "image/png"
	ContentTypeOther = "application/octet-stream"
)

const (
	TableTransactions = "transactions"
)
