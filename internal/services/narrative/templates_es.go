package narrative

import (
	"fmt"
	"time"

	"ArgPulse/internal/domain/models"
	"ArgPulse/pkg/util"
)

type spanish struct{}

var sentimentEs = map[models.Sentiment]string{
	models.SentimentBullish: "optimista",
	models.SentimentBearish: "cauteloso",
	models.SentimentNeutral: "neutro",
	models.SentimentMixed:   "mixto",
}

func (spanish) sectionTitles() [3]string {
	return [3]string{
		"🏛️ Contexto Macroeconómico",
		"📊 Diagnóstico por Sector",
		"🔭 Perspectiva y Factores a Monitorear",
	}
}

func (spanish) title(s models.Sentiment, asOf time.Time) string {
	outlook := "Mixto"
	switch s {
	case models.SentimentBullish:
		outlook = "Positivo"
	case models.SentimentBearish:
		outlook = "Negativo"
	}
	return fmt.Sprintf("Análisis del %s: Panorama Económico %s", util.LongDateEs(asOf), outlook)
}

func (spanish) blueStr(f *facts) string { return money(f.blue.v, util.LocaleEs) }

func (spanish) riskStr(f *facts) string {
	return util.FormatNumber(f.risk.v, util.LocaleEs) + " puntos básicos"
}

func (l spanish) summary(f *facts, s models.Sentiment) string {
	parts := []string{fmt.Sprintf("El panorama económico argentino muestra un tono **%s** en la jornada de hoy.", sentimentEs[s])}
	if f.blue.ok {
		gap := ""
		if f.blueSpread.ok {
			gap = fmt.Sprintf(", con una brecha cambiaria del %s%% respecto al oficial", f.blueSpread.label)
		}
		parts = append(parts, fmt.Sprintf("El dólar blue opera en %s%s.", l.blueStr(f), gap))
	}
	if f.risk.ok {
		parts = append(parts, fmt.Sprintf("El riesgo país se ubica en %s.", l.riskStr(f)))
	}
	return joinNonEmpty(" ", parts...)
}

func (l spanish) macro(f *facts, s models.Sentiment) string {
	parts := []string{fmt.Sprintf("Argentina atraviesa un período de transición económica donde las variables financieras muestran señales %ss.", sentimentEs[s])}

	if f.oficial.ok {
		parts = append(parts, fmt.Sprintf("El tipo de cambio oficial se ubica en %s, administrado bajo el esquema de crawling peg que el Banco Central sostiene para anclar expectativas inflacionarias.", money(f.oficial.v, util.LocaleEs)))
	}

	if f.blue.ok && f.blueSpread.ok {
		var tone string
		switch {
		case f.blueSpread.v < 20:
			tone = "Una brecha por debajo del 20% refleja una relativa estabilidad del mercado cambiario."
		case f.blueSpread.v > 50:
			tone = "Una brecha superior al 50% señala tensiones significativas y puede anticipar presión sobre el tipo oficial."
		default:
			tone = "Un nivel de brecha moderado que refleja cierta incertidumbre pero sin señales de crisis cambiaria inmediata."
		}
		parts = append(parts, fmt.Sprintf("La brecha cambiaria entre el dólar blue (%s) y el tipo oficial se sitúa en el %s%%, un indicador clave de la presión sobre las reservas. %s", l.blueStr(f), f.blueSpread.label, tone))
	}

	if f.mep.ok {
		gap := ""
		if f.mepSpread.ok {
			gap = fmt.Sprintf(", con una brecha MEP-oficial del %s%%", f.mepSpread.label)
		}
		parts = append(parts, fmt.Sprintf("El dólar MEP opera en %s%s, siendo la referencia de los inversores locales para dolarizar carteras dentro del marco legal.", money(f.mep.v, util.LocaleEs), gap))
	}

	return joinNonEmpty(" ", parts...)
}

func (l spanish) sectors(f *facts) string {
	var parts []string

	if f.risk.ok {
		var tail string
		switch {
		case f.risk.v < 600:
			tail = "refleja un acceso potencial a los mercados internacionales de crédito, un hito crucial para la estrategia de financiamiento del Tesoro. Niveles por debajo de 600 bps históricamente habilitan colocaciones de deuda a tasas razonables."
		case f.risk.v > 1000:
			tail = "indica una prima de riesgo elevada que encarece cualquier refinanciamiento externo y limita el acceso al crédito internacional. El mercado descuenta una probabilidad no despreciable de stress de deuda."
		default:
			tail = "muestra una reducción importante respecto a los máximos históricos, aunque aún requiere mejoras sostenidas para habilitar emisiones soberanas líquidas."
		}
		parts = append(parts, fmt.Sprintf("**Deuda soberana:** El riesgo país en %s %s", l.riskStr(f), tail))
	}

	if f.hasIndexValue() {
		var move string
		switch f.trend {
		case models.TrendUp:
			move = fmt.Sprintf("avanza %s en la jornada, reflejando apetito por el riesgo local y posible rotación desde activos de renta fija", f.indexChange())
		case models.TrendDown:
			move = fmt.Sprintf("retrocede %s en la rueda, en línea con una mayor aversión al riesgo o toma de ganancias tras las subas recientes", f.indexChange())
		default:
			move = "opera de forma lateral, sin catalizadores claros en ninguna dirección"
		}
		parts = append(parts, fmt.Sprintf("**Mercado de renta variable:** El MERVAL %s. El índice en términos de dólares CCL es la métrica más relevante para inversores extranjeros.", move))
	}

	if f.inflation.ok {
		var tail string
		switch {
		case f.inflation.v < 3:
			tail = "marca un hito de desaceleración significativa. Si esta tendencia se confirma en los próximos meses, el Banco Central podría revisar el ritmo del crawling peg a la baja, liberando potencial para bajas de tasas."
		case f.inflation.v < 6:
			tail = "se ubica en un rango de desaceleración gradual, aunque aún por encima del objetivo implícito de la gestión económica. Los precios regulados y los servicios son los principales componentes que dificultan una desinflación más rápida."
		default:
			tail = "sigue siendo elevada y representa el principal desafío de la gestión económica. La indexación de contratos y las expectativas desancladas retroalimentan el proceso inflacionario."
		}
		parts = append(parts, fmt.Sprintf("**Precios:** La inflación mensual más reciente de %s %s", f.inflationPct(), tail))
	}

	if f.reserves.ok {
		var tail string
		switch {
		case f.reserves.v > 35000:
			tail = "ofrecen un margen de maniobra aceptable para defender el crawling peg y atender vencimientos de deuda en el corto plazo."
		case f.reserves.v < 25000:
			tail = "se ubican en niveles críticos que limitan la capacidad del BCRA para intervenir en el mercado cambiario. La acumulación de reservas es el principal desafío de la política económica."
		default:
			tail = "muestran un nivel que requiere monitoreo constante. El saldo de turismo, las liquidaciones del agro y el financiamiento externo son los factores determinantes en los próximos meses."
		}
		parts = append(parts, fmt.Sprintf("**Sector externo:** Las reservas brutas del BCRA en USD %s mil millones %s", f.reservesBn(), tail))
	}

	return joinNonEmpty("\n\n", parts...)
}

func (spanish) outlook(f *facts) string {
	parts := []string{"En las próximas jornadas, los factores de mayor relevancia para la coyuntura económica argentina son:"}

	if f.risk.ok && f.risk.v < 800 {
		parts = append(parts, "La evolución del riesgo país seguirá siendo determinante para evaluar si el mercado descuenta una salida del cepo cambiario. Un riesgo país sostenidamente por debajo de 700 bps amplía el margen de maniobra del Gobierno.")
	} else {
		parts = append(parts, "El riesgo país permanece como el termómetro principal del apetito inversor. Cualquier deterioro en el frente fiscal o tensión con el FMI podría presionar al alza este indicador.")
	}

	parts = append(parts, "La dinámica de acumulación de reservas del BCRA determinará la sostenibilidad del esquema cambiario actual. El saldo de la balanza comercial y las liquidaciones del sector agropecuario son variables clave a seguir.")

	if f.inflation.ok {
		tail := "Hasta que la inflación no converja a niveles de un dígito mensual, el esquema de ancla cambiaria seguirá siendo la principal herramienta anti-inflacionaria."
		if f.inflation.v < 4 {
			tail = "De consolidarse la tendencia desinflacionaria, el Gobierno podría avanzar más rápidamente en la normalización del mercado cambiario."
		}
		parts = append(parts, "La inflación es el indicador más sensible política y socialmente. "+tail)
	}

	parts = append(parts, "El contexto internacional —particularmente la tasa de la Fed y los precios de las materias primas agrícolas— condicionará el flujo de divisas y el costo del crédito externo para Argentina.")
	return joinNonEmpty(" ", parts...)
}

func (l spanish) keyPoints(f *facts) []string {
	var out []string

	if f.blue.ok {
		if f.blueSpread.ok {
			out = append(out, fmt.Sprintf("Dólar blue en %s con brecha del %s%% frente al oficial", l.blueStr(f), f.blueSpread.label))
		} else {
			out = append(out, fmt.Sprintf("Dólar blue en %s", l.blueStr(f)))
		}
	}

	if f.risk.ok {
		level := "nivel moderado, mejora gradual"
		switch {
		case f.risk.v < 700:
			level = "nivel favorable para acceso al crédito"
		case f.risk.v > 1000:
			level = "nivel crítico, crédito internacional vedado"
		}
		out = append(out, fmt.Sprintf("Riesgo país en %s bps — %s", util.FormatNumber(f.risk.v, util.LocaleEs), level))
	}

	if f.hasIndexValue() && f.indexChange() != "" {
		verb := "opera"
		switch f.trend {
		case models.TrendUp:
			verb = "sube"
		case models.TrendDown:
			verb = "baja"
		}
		out = append(out, fmt.Sprintf("MERVAL %s %s en la jornada", verb, f.indexChange()))
	}

	if f.inflation.ok {
		note := "presión inflacionaria persistente"
		switch {
		case f.inflation.v < 4:
			note = "tendencia desinflacionaria en curso"
		case f.inflation.v < 7:
			note = "desaceleración moderada, aún por encima del objetivo"
		}
		out = append(out, fmt.Sprintf("Inflación mensual de %s — %s", f.inflationPct(), note))
	}

	if f.reserves.ok {
		out = append(out, fmt.Sprintf("Reservas brutas del BCRA en USD %s mil millones", f.reservesBn()))
	}

	return out
}
