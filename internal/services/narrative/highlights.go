package narrative

import (
	"ArgPulse/internal/domain/models"
	"ArgPulse/pkg/util"
)

// buildHighlights emits one card per present fact in a fixed order.
func buildHighlights(f *facts) []models.Highlight {
	out := make([]models.Highlight, 0, 6)

	if f.blue.ok {
		h := models.Highlight{
			LabelEs: "Dólar Blue",
			LabelEn: "Blue Dollar",
			Value:   money(f.blue.v, util.LocaleEs),
			Trend:   models.TrendNeutral,
		}
		if f.blueSpread.ok {
			h.NoteEs = "Brecha: " + f.blueSpread.label + "%"
			h.NoteEn = "Spread: " + f.blueSpread.label + "%"
		}
		out = append(out, h)
	}

	if f.oficial.ok {
		out = append(out, models.Highlight{
			LabelEs: "Tipo Oficial",
			LabelEn: "Official Rate",
			Value:   money(f.oficial.v, util.LocaleEs),
			Trend:   models.TrendNeutral,
		})
	}

	if f.risk.ok {
		h := models.Highlight{
			LabelEs: "Riesgo País",
			LabelEn: "Country Risk",
			Value:   util.FormatNumber(f.risk.v, util.LocaleEn) + " bps",
			Trend:   models.TrendDown,
		}
		switch {
		case f.risk.v < 700:
			h.Trend = models.TrendUp
			h.NoteEs, h.NoteEn = "Nivel favorable", "Favorable level"
		case f.risk.v > 1000:
			h.NoteEs, h.NoteEn = "Nivel crítico", "Critical level"
		default:
			h.NoteEs, h.NoteEn = "Nivel moderado", "Moderate level"
		}
		out = append(out, h)
	}

	if f.index != nil {
		h := models.Highlight{
			LabelEs: "MERVAL",
			LabelEn: "MERVAL",
			Value:   f.indexChange(),
			Trend:   f.trend,
		}
		if f.hasIndexValue() {
			h.NoteEs = money(f.index.Value, util.LocaleEs) + " pts"
			h.NoteEn = money(f.index.Value, util.LocaleEn) + " pts"
		}
		out = append(out, h)
	}

	if f.reserves.ok {
		h := models.Highlight{
			LabelEs: "Reservas BCRA",
			LabelEn: "BCRA Reserves",
			Value:   "USD " + f.reservesBn() + "B",
			Trend:   models.TrendDown,
			NoteEs:  "Controlado",
			NoteEn:  "Controlled",
		}
		if f.reserves.v > 30000 {
			h.Trend = models.TrendUp
		}
		if f.reserves.v < 25000 {
			h.NoteEs, h.NoteEn = "Nivel bajo", "Low level"
		}
		out = append(out, h)
	}

	if f.inflation.ok {
		h := models.Highlight{
			LabelEs: "Inflación Mensual",
			LabelEn: "Monthly CPI",
			Value:   f.inflationPct(),
			Trend:   models.TrendDown,
		}
		switch {
		case f.inflation.v < 4:
			h.Trend = models.TrendUp
			h.NoteEs, h.NoteEn = "Desaceleración", "Decelerating"
		case f.inflation.v > 8:
			h.NoteEs, h.NoteEn = "Alta presión", "High pressure"
		default:
			h.NoteEs, h.NoteEn = "Moderada", "Moderate"
		}
		out = append(out, h)
	}

	return out
}

func buildTags(f *facts) []string {
	tags := []string{"Economía", "Mercados", "Dólar", "BCRA"}
	switch f.trend {
	case models.TrendUp:
		tags = append(tags, "MERVAL ↑")
	case models.TrendDown:
		tags = append(tags, "MERVAL ↓")
	}
	if f.inflation.ok && f.inflation.v < 4 {
		tags = append(tags, "Desinflación")
	}
	return tags
}
