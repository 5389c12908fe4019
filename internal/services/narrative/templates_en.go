package narrative

import (
	"fmt"
	"time"

	"ArgPulse/internal/domain/models"
	"ArgPulse/pkg/util"
)

type english struct{}

var sentimentEn = map[models.Sentiment]string{
	models.SentimentBullish: "optimistic",
	models.SentimentBearish: "cautious",
	models.SentimentNeutral: "neutral",
	models.SentimentMixed:   "mixed",
}

func (english) sectionTitles() [3]string {
	return [3]string{
		"🏛️ Macroeconomic Context",
		"📊 Sector Breakdown",
		"🔭 Outlook & Key Factors to Watch",
	}
}

func (english) title(s models.Sentiment, asOf time.Time) string {
	outlook := "Mixed"
	switch s {
	case models.SentimentBullish:
		outlook = "Positive"
	case models.SentimentBearish:
		outlook = "Negative"
	}
	return fmt.Sprintf("Analysis — %s: %s Economic Outlook", util.LongDateEn(asOf), outlook)
}

func (english) blueStr(f *facts) string { return money(f.blue.v, util.LocaleEn) }

func (english) riskStr(f *facts) string {
	return util.FormatNumber(f.risk.v, util.LocaleEn) + " bps"
}

func (l english) summary(f *facts, s models.Sentiment) string {
	parts := []string{fmt.Sprintf("Argentina's economic landscape shows a **%s** tone today.", sentimentEn[s])}
	if f.blue.ok {
		gap := ""
		if f.blueSpread.ok {
			gap = fmt.Sprintf(", with a %s%% spread over the official rate", f.blueSpread.label)
		}
		parts = append(parts, fmt.Sprintf("The blue dollar trades at %s%s.", l.blueStr(f), gap))
	}
	if f.risk.ok {
		parts = append(parts, fmt.Sprintf("Country risk stands at %s.", l.riskStr(f)))
	}
	return joinNonEmpty(" ", parts...)
}

func (l english) macro(f *facts, s models.Sentiment) string {
	parts := []string{fmt.Sprintf("Argentina is navigating an economic transition period where financial variables show %s signals.", sentimentEn[s])}

	if f.oficial.ok {
		parts = append(parts, fmt.Sprintf("The official exchange rate stands at %s, managed under the crawling peg scheme that the Central Bank maintains to anchor inflation expectations.", money(f.oficial.v, util.LocaleEn)))
	}

	if f.blue.ok && f.blueSpread.ok {
		var tone string
		switch {
		case f.blueSpread.v < 20:
			tone = "A spread below 20% reflects relative stability in the currency market."
		case f.blueSpread.v > 50:
			tone = "A spread above 50% signals significant tensions and may anticipate pressure on the official rate."
		default:
			tone = "A moderate spread level reflecting some uncertainty but no signs of imminent currency crisis."
		}
		parts = append(parts, fmt.Sprintf("The exchange rate gap between the blue dollar (%s) and the official rate stands at %s%%. %s", l.blueStr(f), f.blueSpread.label, tone))
	}

	if f.mep.ok {
		gap := ""
		if f.mepSpread.ok {
			gap = fmt.Sprintf(", with a MEP-official spread of %s%%", f.mepSpread.label)
		}
		parts = append(parts, fmt.Sprintf("The MEP dollar trades at %s%s, serving as the reference for local investors seeking legal dollarization.", money(f.mep.v, util.LocaleEn), gap))
	}

	return joinNonEmpty(" ", parts...)
}

func (l english) sectors(f *facts) string {
	var parts []string

	if f.risk.ok {
		var tail string
		switch {
		case f.risk.v < 600:
			tail = "reflects potential access to international credit markets, a crucial milestone for the Treasury's financing strategy. Levels below 600 bps historically enable debt placements at reasonable rates."
		case f.risk.v > 1000:
			tail = "indicates an elevated risk premium that raises the cost of any external refinancing and limits access to international credit. The market prices a non-negligible probability of debt stress."
		default:
			tail = "shows a significant reduction from historical highs, though further sustained improvements are needed to enable liquid sovereign issuances."
		}
		parts = append(parts, fmt.Sprintf("**Sovereign debt:** Country risk at %s %s", l.riskStr(f), tail))
	}

	if f.hasIndexValue() {
		var move string
		switch f.trend {
		case models.TrendUp:
			move = fmt.Sprintf("gains %s on the session, reflecting appetite for local risk and potential rotation from fixed income", f.indexChange())
		case models.TrendDown:
			move = fmt.Sprintf("falls %s in the session, in line with increased risk aversion or profit-taking after recent gains", f.indexChange())
		default:
			move = "trades sideways, without clear catalysts in either direction"
		}
		parts = append(parts, fmt.Sprintf("**Equity market:** The MERVAL %s. The index measured in CCL dollars is the most relevant metric for foreign investors.", move))
	}

	if f.inflation.ok {
		var tail string
		switch {
		case f.inflation.v < 3:
			tail = "marks a milestone of significant deceleration. If this trend is confirmed in coming months, the Central Bank could revise the crawling peg pace downward, opening room for rate cuts."
		case f.inflation.v < 6:
			tail = "sits in a range of gradual deceleration, though still above the implicit target. Regulated prices and services are the main components delaying faster disinflation."
		default:
			tail = "remains elevated and is the main challenge of economic management. Contract indexation and unanchored expectations feed back into the inflationary process."
		}
		parts = append(parts, fmt.Sprintf("**Prices:** The latest monthly inflation of %s %s", f.inflationPct(), tail))
	}

	if f.reserves.ok {
		var tail string
		switch {
		case f.reserves.v > 35000:
			tail = "offer acceptable room to defend the crawling peg and service short-term debt maturities."
		case f.reserves.v < 25000:
			tail = "sit at critical levels that limit the BCRA's ability to intervene in the forex market. Reserve accumulation is the main challenge of economic policy."
		default:
			tail = "show a level requiring constant monitoring. Tourism balance, agricultural liquidations, and external financing are the determining factors in coming months."
		}
		parts = append(parts, fmt.Sprintf("**External sector:** BCRA gross reserves at USD %sB %s", f.reservesBn(), tail))
	}

	return joinNonEmpty("\n\n", parts...)
}

func (english) outlook(f *facts) string {
	parts := []string{"In the coming sessions, the most relevant factors for Argentina's economic outlook are:"}

	if f.risk.ok && f.risk.v < 800 {
		parts = append(parts, "Country risk evolution will remain key to assessing whether the market prices in an exit from capital controls. Country risk sustainably below 700 bps gives the Government more room to maneuver.")
	} else {
		parts = append(parts, "Country risk remains the primary barometer of investor appetite. Any deterioration on the fiscal front or tensions with the IMF could push this indicator higher.")
	}

	parts = append(parts, "The BCRA's reserve accumulation dynamic will determine the sustainability of the current exchange rate scheme. Trade balance and agricultural sector liquidations are key variables to track.")

	if f.inflation.ok {
		tail := "Until inflation converges to single-digit monthly levels, the exchange rate anchor will remain the main anti-inflationary tool."
		if f.inflation.v < 4 {
			tail = "If the disinflationary trend consolidates, the Government could advance more quickly toward forex market normalization."
		}
		parts = append(parts, "Inflation is the most politically and socially sensitive indicator. "+tail)
	}

	parts = append(parts, "The international context—particularly the Fed rate and agricultural commodity prices—will shape currency inflows and the cost of external credit for Argentina.")
	return joinNonEmpty(" ", parts...)
}

func (l english) keyPoints(f *facts) []string {
	var out []string

	if f.blue.ok {
		if f.blueSpread.ok {
			out = append(out, fmt.Sprintf("Blue dollar at %s with a %s%% spread over the official rate", l.blueStr(f), f.blueSpread.label))
		} else {
			out = append(out, fmt.Sprintf("Blue dollar at %s", l.blueStr(f)))
		}
	}

	if f.risk.ok {
		level := "moderate level, gradual improvement"
		switch {
		case f.risk.v < 700:
			level = "favorable level for credit access"
		case f.risk.v > 1000:
			level = "critical level, no international credit access"
		}
		out = append(out, fmt.Sprintf("Country risk at %s bps — %s", util.FormatNumber(f.risk.v, util.LocaleEn), level))
	}

	if f.hasIndexValue() && f.indexChange() != "" {
		verb := "trades"
		switch f.trend {
		case models.TrendUp:
			verb = "gains"
		case models.TrendDown:
			verb = "falls"
		}
		out = append(out, fmt.Sprintf("MERVAL %s %s on the day", verb, f.indexChange()))
	}

	if f.inflation.ok {
		note := "persistent inflationary pressure"
		switch {
		case f.inflation.v < 4:
			note = "disinflationary trend in progress"
		case f.inflation.v < 7:
			note = "moderate deceleration, still above target"
		}
		out = append(out, fmt.Sprintf("Monthly inflation at %s — %s", f.inflationPct(), note))
	}

	if f.reserves.ok {
		out = append(out, fmt.Sprintf("BCRA gross reserves at USD %sB", f.reservesBn()))
	}

	return out
}
