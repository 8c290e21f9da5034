package models

type AssessmentType string
type Decision string

const (
	AssessmentInitial       AssessmentType = "initial"
	AssessmentDetailed      AssessmentType = "detailed"
	AssessmentVulnerability AssessmentType = "vulnerability"
	AssessmentCompliance    AssessmentType = "compliance"

	DecisionAcceptable Decision = "acceptable"
	DecisionDetailed   Decision = "detailed"
	DecisionModify     Decision = "modify"
)

func (t AssessmentType) Valid() bool {
	switch t {
	case AssessmentInitial, AssessmentDetailed, AssessmentVulnerability, AssessmentCompliance:
		return true
	}
	return false
}

// пустое решение допустимо — ZCR 4 ещё не пройден
func (d Decision) Valid() bool {
	switch d {
	case "", DecisionAcceptable, DecisionDetailed, DecisionModify:
		return true
	}
	return false
}

// Metadata — описание SuC (ZCR 1), свободные строки
type Metadata struct {
	Name              string `json:"name" yaml:"name"`
	Assessor          string `json:"assessor" yaml:"assessor"`
	Date              string `json:"date" yaml:"date"`
	FacilityType      string `json:"facilityType" yaml:"facilityType"`
	CriticalityLevel  string `json:"criticalityLevel" yaml:"criticalityLevel"`
	SystemDescription string `json:"systemDescription" yaml:"systemDescription"`
	AccessPoints      string `json:"accessPoints" yaml:"accessPoints"`
	NetworkDiagram    string `json:"networkDiagram" yaml:"networkDiagram"`
	Boundaries        string `json:"boundaries" yaml:"boundaries"`
}

// RiskMatrix хранит выбранные организацией шкалы (1–5).
// В расчётах риска не участвует.
type RiskMatrix struct {
	SafetyScale        int `json:"safetyScale" yaml:"safetyScale" validate:"min=1,max=5"`
	EnvironmentalScale int `json:"environmentalScale" yaml:"environmentalScale" validate:"min=1,max=5"`
	FinancialScale     int `json:"financialScale" yaml:"financialScale" validate:"min=1,max=5"`
}

type Approval struct {
	Reviewer       string `json:"reviewer" yaml:"reviewer" validate:"required_with=ReviewDate"`
	ReviewDate     string `json:"reviewDate" yaml:"reviewDate"`
	ReviewComments string `json:"reviewComments" yaml:"reviewComments"`
	Approved       bool   `json:"approved" yaml:"approved"`
	Approver       string `json:"approver" yaml:"approver" validate:"required_if=Approved true"`
	ApprovalDate   string `json:"approvalDate" yaml:"approvalDate" validate:"required_if=Approved true"`
}

// Assessment — корневая запись оценки IEC 62443-3-2, все стадии ZCR 1–7
type Assessment struct {
	AssessmentType AssessmentType `json:"assessmentType" yaml:"assessmentType"`
	Metadata       Metadata       `json:"metadata" yaml:"metadata"`

	Assets               []Asset               `json:"assets" yaml:"assets"`
	Zones                []Zone                `json:"zones" yaml:"zones"`
	Conduits             []Conduit             `json:"conduits" yaml:"conduits"`
	ConsequenceScenarios []ConsequenceScenario `json:"consequenceScenarios" yaml:"consequenceScenarios"`
	ThreatScenarios      []ThreatScenario      `json:"threatScenarios" yaml:"threatScenarios"`

	RiskMatrix             RiskMatrix `json:"riskMatrix" yaml:"riskMatrix"`
	TolerableRiskThreshold int        `json:"tolerableRiskThreshold" yaml:"tolerableRiskThreshold"`
	RiskJustification      string     `json:"riskJustification" yaml:"riskJustification"`
	Decision               Decision   `json:"decision" yaml:"decision"`

	Approval Approval `json:"approval" yaml:"approval"`
}

const DefaultTolerableRiskThreshold = 3

// NewAssessment — пустая оценка для первого запуска
func NewAssessment() *Assessment {
	return &Assessment{
		AssessmentType:         AssessmentInitial,
		Assets:                 []Asset{},
		Zones:                  []Zone{},
		Conduits:               []Conduit{},
		ConsequenceScenarios:   []ConsequenceScenario{},
		ThreatScenarios:        []ThreatScenario{},
		RiskMatrix:             RiskMatrix{SafetyScale: 3, EnvironmentalScale: 3, FinancialScale: 3},
		TolerableRiskThreshold: DefaultTolerableRiskThreshold,
	}
}

// Normalize чинит то, что могло прийти из хранилища в неполном виде:
// nil-списки, порог вне 1..5, implemented вне applied.
func (a *Assessment) Normalize() {
	if a.Assets == nil {
		a.Assets = []Asset{}
	}
	if a.Zones == nil {
		a.Zones = []Zone{}
	}
	if a.Conduits == nil {
		a.Conduits = []Conduit{}
	}
	if a.ConsequenceScenarios == nil {
		a.ConsequenceScenarios = []ConsequenceScenario{}
	}
	if a.ThreatScenarios == nil {
		a.ThreatScenarios = []ThreatScenario{}
	}
	if !a.AssessmentType.Valid() {
		a.AssessmentType = AssessmentInitial
	}
	if a.TolerableRiskThreshold < 1 || a.TolerableRiskThreshold > 5 {
		a.TolerableRiskThreshold = DefaultTolerableRiskThreshold
	}
	for i := range a.ThreatScenarios {
		a.ThreatScenarios[i].PruneImplemented()
	}
}

// DeepCopy — полная копия, без общих слайсов и множеств
func (a *Assessment) DeepCopy() *Assessment {
	cp := *a
	cp.Assets = append([]Asset{}, a.Assets...)
	cp.Zones = append([]Zone{}, a.Zones...)
	cp.Conduits = append([]Conduit{}, a.Conduits...)
	cp.ConsequenceScenarios = append([]ConsequenceScenario{}, a.ConsequenceScenarios...)
	cp.ThreatScenarios = make([]ThreatScenario, len(a.ThreatScenarios))
	for i, ts := range a.ThreatScenarios {
		ts.FRApplied = ts.FRApplied.Clone()
		ts.FRImplemented = ts.FRImplemented.Clone()
		cp.ThreatScenarios[i] = ts
	}
	return &cp
}
