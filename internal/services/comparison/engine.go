package comparison

import (
	"errors"
	"math"
)

// Ошибки структурно некорректного ввода. Неполные данные ошибкой не являются:
// метрика без значений деградирует до победителя "N/A".
var (
	ErrInvalidEntityCount = errors.New("entity count out of range [2, 3]")
	ErrNoMetrics          = errors.New("empty metric list")
)

// WinnerNone — победитель метрики, по которой ни у одного объекта нет значения.
const WinnerNone = "N/A"

const (
	// MinEntities и MaxEntities — допустимое число сравниваемых объектов.
	MinEntities = 2
	MaxEntities = 3
)

// Direction — предпочтительное направление метрики.
type Direction string

const (
	HigherIsBetter Direction = "higher_is_better"
	LowerIsBetter  Direction = "lower_is_better"
)

// Metric — одна ось сравнения: имя, направление, вес в композитном счёте
// и типизированный экстрактор значения. Экстрактор возвращает nil при
// отсутствии данных и никогда не паникует.
type Metric struct {
	Name      string
	Direction Direction
	Weight    float64
	Value     func(Snapshot) *float64
}

// MetricResult — результат сравнения по одной метрике.
type MetricResult struct {
	// ValuesByEntity — значение метрики по каждому объекту, nil при отсутствии
	ValuesByEntity map[string]*float64 `json:"values_by_entity"`
	// WinnerID — ID победителя или "N/A", если значений нет ни у кого
	WinnerID string `json:"winner_id"`
	// RunnerUpMargin — |победитель − второе место|, 0 при единственном значении
	RunnerUpMargin float64 `json:"runner_up_margin"`
}

// Result — полный результат сравнения.
type Result struct {
	// EntityIDs — идентификаторы объектов в порядке запроса
	EntityIDs []string                `json:"entity_ids"`
	Metrics   map[string]MetricResult `json:"metrics"`
	// CompositeScores — взвешенная сумма нормализованных значений по объектам
	CompositeScores   map[string]float64 `json:"composite_scores"`
	CompositeWinnerID string             `json:"composite_winner_id"`
	Summary           string             `json:"summary"`
}

// Compare сравнивает 2-3 объекта по набору метрик.
//
// Детерминировано и свободно от побочных эффектов: без часов, без
// случайности, без I/O. При равенстве значений всегда побеждает объект,
// встретившийся раньше в порядке запроса.
func Compare(snapshots []Snapshot, metrics []Metric) (*Result, error) {
	if len(snapshots) < MinEntities || len(snapshots) > MaxEntities {
		return nil, ErrInvalidEntityCount
	}
	if len(metrics) == 0 {
		return nil, ErrNoMetrics
	}

	ids := make([]string, len(snapshots))
	for i, s := range snapshots {
		ids[i] = s.ID
	}

	results := make(map[string]MetricResult, len(metrics))
	composite := make(map[string]float64, len(snapshots))
	for _, id := range ids {
		composite[id] = 0
	}

	for _, metric := range metrics {
		values := make(map[string]*float64, len(snapshots))
		for _, s := range snapshots {
			values[s.ID] = metric.Value(s)
		}

		winnerID, margin := pickWinner(ids, values, metric.Direction)
		results[metric.Name] = MetricResult{
			ValuesByEntity: values,
			WinnerID:       winnerID,
			RunnerUpMargin: margin,
		}

		// Деградировавшая метрика не участвует в композитном счёте
		if winnerID == WinnerNone {
			continue
		}

		best := *values[winnerID]
		for _, id := range ids {
			v := values[id]
			if v == nil {
				continue
			}
			composite[id] += metric.Weight * normalize(*v, best, metric.Direction)
		}
	}

	result := &Result{
		EntityIDs:         ids,
		Metrics:           results,
		CompositeScores:   composite,
		CompositeWinnerID: pickCompositeWinner(ids, composite),
	}
	result.Summary = buildSummary(result)

	return result, nil
}

// pickWinner выбирает победителя метрики в порядке запроса и считает
// отрыв от второго места.
func pickWinner(ids []string, values map[string]*float64, dir Direction) (string, float64) {
	winnerID := WinnerNone
	var winnerValue float64

	for _, id := range ids {
		v := values[id]
		if v == nil {
			continue
		}
		if winnerID == WinnerNone || better(*v, winnerValue, dir) {
			winnerID = id
			winnerValue = *v
		}
	}
	if winnerID == WinnerNone {
		return WinnerNone, 0
	}

	// Второе место — лучший из остальных
	secondFound := false
	var secondValue float64
	for _, id := range ids {
		v := values[id]
		if v == nil || id == winnerID {
			continue
		}
		if !secondFound || better(*v, secondValue, dir) {
			secondFound = true
			secondValue = *v
		}
	}
	if !secondFound {
		return winnerID, 0
	}

	return winnerID, math.Abs(winnerValue - secondValue)
}

// better — строго лучше с учётом направления. Равенство не считается
// улучшением, что и даёт стабильный tie-break по порядку запроса.
func better(candidate, current float64, dir Direction) bool {
	if dir == LowerIsBetter {
		return candidate < current
	}
	return candidate > current
}

// normalize приводит значение к шкале 0..100 относительно лучшего значения
// метрики, с учётом направления. После нормализации все метрики
// higher-is-better и сопоставимы между собой независимо от исходных шкал.
func normalize(value, best float64, dir Direction) float64 {
	if dir == LowerIsBetter {
		if value == 0 {
			return 100
		}
		if best == 0 {
			return 0
		}
		return best / value * 100
	}
	if best == 0 {
		if value == 0 {
			return 100
		}
		return 0
	}
	return value / best * 100
}

// pickCompositeWinner — объект с наибольшей взвешенной суммой.
// При равенстве (включая случай, когда все метрики деградировали и
// суммы нулевые) побеждает первый в порядке запроса.
func pickCompositeWinner(ids []string, composite map[string]float64) string {
	winnerID := ids[0]
	for _, id := range ids[1:] {
		if composite[id] > composite[winnerID] {
			winnerID = id
		}
	}
	return winnerID
}
