package models

type FailureMode string
type ThreatActor string
type AttackVector string

const (
	FailureLossOfControl   FailureMode = "loss_of_control"
	FailureLossOfView      FailureMode = "loss_of_view"
	FailureManipControl    FailureMode = "manipulation_of_control"
	FailureManipView       FailureMode = "manipulation_of_view"
	FailureDenialOfService FailureMode = "denial_of_service"
	FailureLossOfSafety    FailureMode = "loss_of_safety"
	FailureDataTheft       FailureMode = "data_exfiltration"

	ActorNationState  ThreatActor = "nation_state"
	ActorCriminal     ThreatActor = "cybercriminal"
	ActorHacktivist   ThreatActor = "hacktivist"
	ActorInsider      ThreatActor = "insider"
	ActorTerrorist    ThreatActor = "terrorist"
	ActorCompetitor   ThreatActor = "competitor"
	ActorScriptKiddie ThreatActor = "script_kiddie"

	VectorNetwork      AttackVector = "network"
	VectorRemoteAccess AttackVector = "remote_access"
	VectorRemovable    AttackVector = "removable_media"
	VectorSupplyChain  AttackVector = "supply_chain"
	VectorPhysical     AttackVector = "physical"
	VectorWireless     AttackVector = "wireless"
	VectorSocial       AttackVector = "social_engineering"
)

// Impacts — оценки последствий 1–5. Ноль означает "не заполнено".
type Impacts struct {
	Safety        int `json:"safety" yaml:"safety" validate:"min=1,max=5"`
	Environmental int `json:"environmental" yaml:"environmental" validate:"min=1,max=5"`
	Financial     int `json:"financial" yaml:"financial" validate:"min=1,max=5"`
	Operational   int `json:"operational" yaml:"operational" validate:"min=1,max=5"`
	Regulatory    int `json:"regulatory" yaml:"regulatory" validate:"min=1,max=5"`
}

func (i Impacts) Values() []int {
	return []int{i.Safety, i.Environmental, i.Financial, i.Operational, i.Regulatory}
}

// ConsequenceScenario — сценарий для первичной оценки (ZCR 2), likelihood = 1
type ConsequenceScenario struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name" validate:"required"`
	Asset       string      `json:"asset" yaml:"asset"`
	FailureMode FailureMode `json:"failureMode" yaml:"failureMode" validate:"omitempty,oneof=loss_of_control loss_of_view manipulation_of_control manipulation_of_view denial_of_service loss_of_safety data_exfiltration"`
	Impacts     Impacts     `json:"impacts" yaml:"impacts"`
}

// ThreatScenario — детальная оценка (ZCR 5)
type ThreatScenario struct {
	ID                       string       `json:"id" yaml:"id"`
	Name                     string       `json:"name" yaml:"name" validate:"required"`
	ThreatActor              ThreatActor  `json:"threatActor" yaml:"threatActor" validate:"omitempty,oneof=nation_state cybercriminal hacktivist insider terrorist competitor script_kiddie"`
	AttackVector             AttackVector `json:"attackVector" yaml:"attackVector" validate:"omitempty,oneof=network remote_access removable_media supply_chain physical wireless social_engineering"`
	Description              string       `json:"description" yaml:"description"`
	TargetedAssets           string       `json:"targetedAssets" yaml:"targetedAssets"`
	TargetedZones            string       `json:"targetedZones" yaml:"targetedZones"`
	ExploitedVulnerabilities string       `json:"exploitedVulnerabilities" yaml:"exploitedVulnerabilities"`
	Likelihood               float64      `json:"likelihood" yaml:"likelihood" validate:"likelihood"`
	Impact                   int          `json:"impact" yaml:"impact" validate:"min=1,max=5"`
	ExistingControls         string       `json:"existingControls" yaml:"existingControls"`
	FRApplied                FRSet        `json:"frApplied" yaml:"frApplied"`
	FRImplemented            FRSet        `json:"frImplemented" yaml:"frImplemented"`
}

// SetApplied отмечает FR как применимое. Снятие применимости снимает и реализацию.
func (t *ThreatScenario) SetApplied(fr FR, on bool) {
	if t.FRApplied == nil {
		t.FRApplied = FRSet{}
	}
	if on {
		t.FRApplied.Add(fr)
		return
	}
	t.FRApplied.Remove(fr)
	t.FRImplemented.Remove(fr)
}

// SetImplemented: нельзя реализовать то, что не отмечено применимым
func (t *ThreatScenario) SetImplemented(fr FR, on bool) bool {
	if !on {
		t.FRImplemented.Remove(fr)
		return true
	}
	if !t.FRApplied.Has(fr) {
		return false
	}
	if t.FRImplemented == nil {
		t.FRImplemented = FRSet{}
	}
	t.FRImplemented.Add(fr)
	return true
}

// PruneImplemented восстанавливает frImplemented ⊆ frApplied
func (t *ThreatScenario) PruneImplemented() {
	for fr := range t.FRImplemented {
		if !t.FRApplied.Has(fr) {
			delete(t.FRImplemented, fr)
		}
	}
}

// Outstanding — применимые, но не реализованные FR
func (t ThreatScenario) Outstanding() []FR {
	return t.FRApplied.Difference(t.FRImplemented).Sorted()
}
