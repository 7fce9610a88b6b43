package comparison

import (
	"fmt"
	"slices"
	"strings"
)

// buildSummary строит текстовое резюме сравнения. Три ветки по тому,
// выигрывает ли композитный победитель и заголовочные метрики
// (vastu_score и climate_risk): полное согласие, частичное, нет согласия.
// Чистое шаблонирование, детерминировано при фиксированном результате.
func buildSummary(r *Result) string {
	winner := r.CompositeWinnerID

	var present, won []string
	var rivals []string
	for _, name := range headlineMetrics {
		mr, ok := r.Metrics[name]
		if !ok || mr.WinnerID == WinnerNone {
			continue
		}
		present = append(present, name)
		if mr.WinnerID == winner {
			won = append(won, name)
		} else {
			rivals = append(rivals, mr.WinnerID)
		}
	}

	switch {
	case len(present) == 0:
		// Заголовочные метрики не разрешились — без заявлений о гармонии и климате
		return fmt.Sprintf("%s scores best overall on the compared metrics.", winner)
	case len(won) == len(present):
		return fmt.Sprintf(
			"%s stands out as the best overall value, leading on both harmony and climate safety.",
			winner,
		)
	case len(won) > 0:
		return fmt.Sprintf(
			"%s offers the best overall value, though %s is worth a look for its %s.",
			winner, rivals[0], metricPhrase(metricWonBy(r, rivals[0])),
		)
	default:
		return fmt.Sprintf(
			"No single property dominates: %s scores best overall, while %s",
			winner, strengthsPhrase(r, winner),
		)
	}
}

// metricWonBy — заголовочная метрика, выигранная указанным объектом.
func metricWonBy(r *Result, id string) string {
	for _, name := range headlineMetrics {
		if mr, ok := r.Metrics[name]; ok && mr.WinnerID == id {
			return name
		}
	}
	return ""
}

// strengthsPhrase перечисляет сильные стороны остальных объектов.
func strengthsPhrase(r *Result, winner string) string {
	var parts []string
	for _, id := range r.EntityIDs {
		if id == winner {
			continue
		}
		var wins []string
		for name, mr := range r.Metrics {
			if mr.WinnerID == id {
				wins = append(wins, metricPhrase(name))
			}
		}
		if len(wins) > 0 {
			parts = append(parts, fmt.Sprintf("%s leads on %s", id, joinSorted(wins)))
		}
	}
	if len(parts) == 0 {
		return "the others trail across the board."
	}
	return strings.Join(parts, " and ") + "."
}

// joinSorted — детерминированный порядок перечисления метрик.
func joinSorted(items []string) string {
	sorted := append([]string{}, items...)
	slices.Sort(sorted)
	return strings.Join(sorted, ", ")
}

// metricPhrase — человекочитаемое имя метрики для резюме.
func metricPhrase(name string) string {
	switch name {
	case MetricPrice:
		return "price"
	case MetricPricePerSqm:
		return "price per sq.m"
	case MetricVastuScore:
		return "Vastu harmony"
	case MetricClimateRisk:
		return "climate safety"
	case MetricLandEnergy:
		return "land energy"
	case MetricArea:
		return "living area"
	case MetricAge:
		return "newer construction"
	default:
		return name
	}
}
