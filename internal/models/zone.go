package models

type ZoneType string
type SecurityLevel string

const (
	ZoneEnterprise    ZoneType = "enterprise"
	ZoneManufacturing ZoneType = "manufacturing"
	ZoneControl       ZoneType = "control"
	ZoneSafety        ZoneType = "safety"
	ZoneDMZ           ZoneType = "dmz"
	ZoneRemote        ZoneType = "remote"

	SL1 SecurityLevel = "SL1"
	SL2 SecurityLevel = "SL2"
	SL3 SecurityLevel = "SL3"
	SL4 SecurityLevel = "SL4"
)

// High — SL3/SL4 считаются зонами повышенного риска
func (l SecurityLevel) High() bool {
	return l == SL3 || l == SL4
}

// Zone — зона безопасности IEC 62443 (ZCR 3)
type Zone struct {
	ID            string        `json:"id" yaml:"id"`
	Name          string        `json:"name" yaml:"name" validate:"required"`
	Type          ZoneType      `json:"type" yaml:"type" validate:"required,oneof=enterprise manufacturing control safety dmz remote"`
	SecurityLevel SecurityLevel `json:"securityLevel" yaml:"securityLevel" validate:"required,oneof=SL1 SL2 SL3 SL4"`
}

// Conduit — канал между зонами. Ссылки на зоны не проверяются.
type Conduit struct {
	ID                   string `json:"id" yaml:"id"`
	Name                 string `json:"name" yaml:"name" validate:"required"`
	SourceZone           string `json:"sourceZone" yaml:"sourceZone" validate:"required"`
	DestinationZone      string `json:"destinationZone" yaml:"destinationZone" validate:"required"`
	Type                 string `json:"type" yaml:"type"`
	Protocols            string `json:"protocols" yaml:"protocols"`
	SecurityRequirements string `json:"securityRequirements" yaml:"securityRequirements"`
}
