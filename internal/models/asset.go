package models

import "strings"

type AssetType string
type Criticality string

const (
	AssetPLC         AssetType = "plc"
	AssetHMI         AssetType = "hmi"
	AssetSCADA       AssetType = "scada"
	AssetRTU         AssetType = "rtu"
	AssetDCS         AssetType = "dcs"
	AssetHistorian   AssetType = "historian"
	AssetEngWS       AssetType = "engineering_workstation"
	AssetNetwork     AssetType = "network_device"
	AssetSIS         AssetType = "safety_system"
	AssetServer      AssetType = "server"
	AssetWorkstation AssetType = "workstation"
	AssetIoT         AssetType = "iot"
	AssetOther       AssetType = "other"

	CriticalityCritical Criticality = "critical"
	CriticalityHigh     Criticality = "high"
	CriticalityMedium   Criticality = "medium"
	CriticalityLow      Criticality = "low"
)

var assetTypes = map[AssetType]struct{}{
	AssetPLC: {}, AssetHMI: {}, AssetSCADA: {}, AssetRTU: {}, AssetDCS: {},
	AssetHistorian: {}, AssetEngWS: {}, AssetNetwork: {}, AssetSIS: {},
	AssetServer: {}, AssetWorkstation: {}, AssetIoT: {}, AssetOther: {},
}

// Known — тип из справочника. Импорт принимает и неизвестные типы как есть.
func (t AssetType) Known() bool {
	_, ok := assetTypes[t]
	return ok
}

func (c Criticality) Valid() bool {
	switch c {
	case CriticalityCritical, CriticalityHigh, CriticalityMedium, CriticalityLow:
		return true
	}
	return false
}

// ParseCriticality: регистр не важен, пусто или мусор -> medium
func ParseCriticality(s string) Criticality {
	c := Criticality(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return CriticalityMedium
	}
	return c
}

// Asset — элемент инвентаризации (ZCR 1)
type Asset struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name" validate:"required"`
	Type        AssetType   `json:"type" yaml:"type"`
	Location    string      `json:"location" yaml:"location"`
	Vendor      string      `json:"vendor" yaml:"vendor"`
	OSVersion   string      `json:"osVersion" yaml:"osVersion"`
	Network     string      `json:"network" yaml:"network"`
	Criticality Criticality `json:"criticality" yaml:"criticality" validate:"omitempty,oneof=critical high medium low"`
}
