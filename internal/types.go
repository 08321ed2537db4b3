package internal

// TariffShift says whether a component crosses into a different tariff
// heading than the finished part.
type TariffShift string

const (
	TariffShiftYes TariffShift = "YES"
	TariffShiftNo  TariffShift = "NO"
	TariffShiftNA  TariffShift = "NA"
)

// Compliance is the USMCA qualification verdict.
type Compliance string

const (
	ComplianceYes Compliance = "YES"
	ComplianceNo  Compliance = "NO"
)

// PartNumberEntry is one selectable finished part found in an uploaded BOM.
type PartNumberEntry struct {
	PartNumber  string `json:"partNumber"`
	Description string `json:"description"`
	HTS         string `json:"htsus"`
}

// ComponentRecord is one normalized BOM row for a selected part number.
// TariffShift stays empty until the RVC engine classifies the component.
type ComponentRecord struct {
	ComponentNum string      `json:"componentNum"`
	Description  string      `json:"description"`
	Quantity     string      `json:"quantity"`
	Unit         string      `json:"unit"`
	CostUnit     float64     `json:"costUnit"`
	CostTotal    float64     `json:"costTotal"`
	Country      string      `json:"country"`
	HTS          string      `json:"htsus"`
	TariffShift  TariffShift `json:"tariffShift,omitempty"`
}

// CountryBreakdown accumulates material cost per country of origin.
type CountryBreakdown struct {
	Total      float64 `json:"total"`
	Percentage float64 `json:"percentage"`
	IsUSMCA    bool    `json:"isUSMCA"`
}

// AnalysisResult is the full outcome of one RVC calculation.
type AnalysisResult struct {
	TotalMaterials        float64                     `json:"totalMaterials"`
	TotalManufacturedCost float64                     `json:"totalManufacturedCost"`
	LaborAndOthers        float64                     `json:"laborAndOthers"`
	NonOriginatingTotal   float64                     `json:"nonOriginatingTotal"`
	RVC                   float64                     `json:"rvc"`
	Qualifies             Compliance                  `json:"qualifies"`
	ByCountry             map[string]CountryBreakdown `json:"byCountry"`
	Components            []ComponentRecord           `json:"components"`
	Warnings              []string                    `json:"warnings"`
}

// UploadRow is a stored BOM workbook upload. RawRef points at the workbook
// bytes kept on disk next to the database.
type UploadRow struct {
	ID        string
	Filename  string
	SheetName string
	RowCount  int
	PartCount int
	RawRef    string
	Status    string
	CreatedAt string
}

// AnalysisRow is a persisted RVC calculation for one part of one upload.
type AnalysisRow struct {
	ID          int
	UploadID    string
	PartNumber  string
	Description string
	HTS         string
	TMC         float64
	RVC         float64
	Qualifies   string
	ResultJSON  string
	CreatedAt   string
}
