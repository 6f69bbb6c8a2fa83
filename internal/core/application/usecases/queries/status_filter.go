package queries

import (
	"strings"

	"dispatch/internal/core/domain/model/order"
)

// ActiveStatusFilter expands to every status that still needs work.
const ActiveStatusFilter = "active"

// ParseStatusFilter turns a status query parameter into a set of statuses.
// An empty value means no filter. "active" expands to PENDING, ASSIGNED and
// IN_DELIVERY. Other values are comma-separated status names in any case.
func ParseStatusFilter(raw string) ([]order.Status, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if strings.EqualFold(raw, ActiveStatusFilter) {
		return order.ActiveStatuses(), nil
	}

	seen := make(map[order.Status]struct{})
	statuses := make([]order.Status, 0)
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		s, err := order.ParseStatus(part)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		statuses = append(statuses, s)
	}
	return statuses, nil
}
