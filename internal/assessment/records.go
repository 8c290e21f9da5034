package assessment

import (
	"fmt"

	"ot-grc/internal/models"
)

// update — изменение под блокировкой; при ошибке fn оценка не меняется
func (e *Engine) update(fn func(a *models.Assessment) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.current)
}

func removeByID[T any](list []T, id string, idOf func(T) string) ([]T, bool) {
	for i, item := range list {
		if idOf(item) == id {
			return append(list[:i:i], list[i+1:]...), true
		}
	}
	return list, false
}

// ====== ZCR 1: ОПИСАНИЕ SuC И АКТИВЫ ======

func (e *Engine) SetAssessmentType(t models.AssessmentType) error {
	if !t.Valid() {
		return fmt.Errorf("%w: unknown assessment type %q", ErrInvalidValue, t)
	}
	return e.update(func(a *models.Assessment) error {
		a.AssessmentType = t
		return nil
	})
}

func (e *Engine) UpdateMetadata(m models.Metadata) {
	_ = e.update(func(a *models.Assessment) error {
		a.Metadata = m
		return nil
	})
}

func (e *Engine) AddAsset(as models.Asset) (models.Asset, error) {
	if as.Criticality == "" {
		as.Criticality = models.CriticalityMedium
	}
	if err := models.Validate(as); err != nil {
		return as, err
	}
	as.ID = e.newID()
	err := e.update(func(a *models.Assessment) error {
		a.Assets = append(a.Assets, as)
		return nil
	})
	return as, err
}

func (e *Engine) DeleteAsset(id string) error {
	return e.update(func(a *models.Assessment) error {
		var ok bool
		a.Assets, ok = removeByID(a.Assets, id, func(x models.Asset) string { return x.ID })
		if !ok {
			return fmt.Errorf("asset %s: %w", id, ErrNotFound)
		}
		return nil
	})
}

// ====== ZCR 2: СЦЕНАРИИ ПОСЛЕДСТВИЙ ======

func (e *Engine) AddConsequence(s models.ConsequenceScenario) (models.ConsequenceScenario, error) {
	if err := models.Validate(s); err != nil {
		return s, err
	}
	s.ID = e.newID()
	err := e.update(func(a *models.Assessment) error {
		a.ConsequenceScenarios = append(a.ConsequenceScenarios, s)
		return nil
	})
	return s, err
}

func (e *Engine) DeleteConsequence(id string) error {
	return e.update(func(a *models.Assessment) error {
		var ok bool
		a.ConsequenceScenarios, ok = removeByID(a.ConsequenceScenarios, id,
			func(x models.ConsequenceScenario) string { return x.ID })
		if !ok {
			return fmt.Errorf("consequence scenario %s: %w", id, ErrNotFound)
		}
		return nil
	})
}

func (e *Engine) SetRiskMatrix(rm models.RiskMatrix) error {
	if err := models.Validate(rm); err != nil {
		return err
	}
	return e.update(func(a *models.Assessment) error {
		a.RiskMatrix = rm
		return nil
	})
}

// ====== ZCR 3: ЗОНЫ И КАНАЛЫ ======

func (e *Engine) AddZone(z models.Zone) (models.Zone, error) {
	if err := models.Validate(z); err != nil {
		return z, err
	}
	z.ID = e.newID()
	err := e.update(func(a *models.Assessment) error {
		a.Zones = append(a.Zones, z)
		return nil
	})
	return z, err
}

func (e *Engine) DeleteZone(id string) error {
	return e.update(func(a *models.Assessment) error {
		var ok bool
		a.Zones, ok = removeByID(a.Zones, id, func(x models.Zone) string { return x.ID })
		if !ok {
			return fmt.Errorf("zone %s: %w", id, ErrNotFound)
		}
		return nil
	})
}

func (e *Engine) AddConduit(c models.Conduit) (models.Conduit, error) {
	if err := models.Validate(c); err != nil {
		return c, err
	}
	c.ID = e.newID()
	err := e.update(func(a *models.Assessment) error {
		a.Conduits = append(a.Conduits, c)
		return nil
	})
	return c, err
}

func (e *Engine) DeleteConduit(id string) error {
	return e.update(func(a *models.Assessment) error {
		var ok bool
		a.Conduits, ok = removeByID(a.Conduits, id, func(x models.Conduit) string { return x.ID })
		if !ok {
			return fmt.Errorf("conduit %s: %w", id, ErrNotFound)
		}
		return nil
	})
}

// ====== ZCR 4: СРАВНЕНИЕ С ДОПУСТИМЫМ РИСКОМ ======

func (e *Engine) SetDecision(threshold int, justification string, d models.Decision) error {
	if threshold < 1 || threshold > 5 {
		return ErrInvalidThreshold
	}
	if !d.Valid() {
		return fmt.Errorf("%w: unknown decision %q", ErrInvalidValue, d)
	}
	return e.update(func(a *models.Assessment) error {
		a.TolerableRiskThreshold = threshold
		a.RiskJustification = justification
		a.Decision = d
		return nil
	})
}

// ====== ZCR 5–6: СЦЕНАРИИ УГРОЗ И FR ======

func (e *Engine) AddThreat(t models.ThreatScenario) (models.ThreatScenario, error) {
	if err := models.Validate(t); err != nil {
		return t, err
	}
	t.ID = e.newID()
	t.FRApplied = t.FRApplied.Clone()
	t.FRImplemented = t.FRImplemented.Clone()
	t.PruneImplemented()
	err := e.update(func(a *models.Assessment) error {
		a.ThreatScenarios = append(a.ThreatScenarios, t)
		return nil
	})
	return t, err
}

func (e *Engine) DeleteThreat(id string) error {
	return e.update(func(a *models.Assessment) error {
		var ok bool
		a.ThreatScenarios, ok = removeByID(a.ThreatScenarios, id,
			func(x models.ThreatScenario) string { return x.ID })
		if !ok {
			return fmt.Errorf("threat scenario %s: %w", id, ErrNotFound)
		}
		return nil
	})
}

// SetThreatFR переключает применимость или реализацию FR у сценария угрозы.
// Снятие применимости снимает и реализацию.
func (e *Engine) SetThreatFR(id string, fr models.FR, implemented, on bool) (models.ThreatScenario, error) {
	if !fr.Valid() {
		return models.ThreatScenario{}, fmt.Errorf("%w: unknown foundational requirement %q", ErrInvalidValue, fr)
	}
	var out models.ThreatScenario
	err := e.update(func(a *models.Assessment) error {
		for i := range a.ThreatScenarios {
			t := &a.ThreatScenarios[i]
			if t.ID != id {
				continue
			}
			if implemented {
				if !t.SetImplemented(fr, on) {
					return fmt.Errorf("%s: %w", fr, ErrFRNotApplicable)
				}
			} else {
				t.SetApplied(fr, on)
			}
			out = *t
			out.FRApplied = t.FRApplied.Clone()
			out.FRImplemented = t.FRImplemented.Clone()
			return nil
		}
		return fmt.Errorf("threat scenario %s: %w", id, ErrNotFound)
	})
	return out, err
}

// ====== ZCR 7: СОГЛАСОВАНИЕ ======

func (e *Engine) SetApproval(ap models.Approval) error {
	if err := models.Validate(ap); err != nil {
		return err
	}
	return e.update(func(a *models.Assessment) error {
		a.Approval = ap
		return nil
	})
}
