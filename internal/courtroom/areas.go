package courtroom

import (
	"github.com/udisondev/aoserver/internal/config"
	"github.com/udisondev/aoserver/internal/model"
)

// BuildAreas creates the configured areas. Area IDs are list indices.
func BuildAreas(cfgs []config.AreaConfig, maxStatements int) []*model.Area {
	areas := make([]*model.Area, 0, len(cfgs))
	for i, c := range cfgs {
		a := model.NewArea(i, c.Name, model.AreaPolicy{
			Side:                c.Side,
			IniswapAllowed:      c.IniswapAllowed,
			BlankpostingAllowed: c.BlankpostingAllowed,
			ShoutsAllowed:       c.ShoutsAllowed,
			ShownamesAllowed:    c.ShownamesAllowed,
			ForceImmediate:      c.ForceImmediate,
			MedievalMode:        c.MedievalMode,
		}, model.ParseEvidenceMod(c.EvidenceMod), maxStatements)

		a.SetLockStatus(model.ParseLockStatus(c.Lock))
		for _, e := range c.Evidence {
			a.AddEvidence(model.Evidence{
				Name:        e.Name,
				Description: e.Description,
				Image:       e.Image,
				Owner:       e.Owner,
			})
		}
		areas = append(areas, a)
	}
	return areas
}
