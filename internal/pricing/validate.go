package pricing

import (
	"fmt"

	apperrors "github.com/speedy-van/speedy-van-sub008/pkg/errors"
)

var knownServiceTypes = map[ServiceType]struct{}{
	ServiceVanOnly:       {},
	ServiceManAndVan:     {},
	ServiceTwoPerson:     {},
	ServiceVanWithTwoMen: {},
}

// FieldIssue names one rejected request field.
type FieldIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// validateRequest rejects requests the pipeline cannot price. It collects
// every issue rather than stopping at the first one.
func validateRequest(req QuoteRequest) *apperrors.Error {
	var issues []FieldIssue

	if len(req.Items) == 0 {
		issues = append(issues, FieldIssue{Field: "items", Message: "at least one item is required"})
	}
	for i, item := range req.Items {
		if item.Quantity < 1 {
			issues = append(issues, FieldIssue{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: "quantity must be at least 1",
			})
		}
		if item.Volume < 0 {
			issues = append(issues, FieldIssue{
				Field:   fmt.Sprintf("items[%d].volume", i),
				Message: "volume cannot be negative",
			})
		}
		if item.Weight < 0 {
			issues = append(issues, FieldIssue{
				Field:   fmt.Sprintf("items[%d].weight", i),
				Message: "weight cannot be negative",
			})
		}
	}

	if _, ok := knownServiceTypes[req.ServiceType]; !ok {
		issues = append(issues, FieldIssue{
			Field:   "serviceType",
			Message: fmt.Sprintf("unknown service type %q", req.ServiceType),
		})
	}

	if req.DistanceMiles < 0 {
		issues = append(issues, FieldIssue{Field: "distanceMiles", Message: "distance cannot be negative"})
	}
	if req.EstimatedDurationHours < 0 {
		issues = append(issues, FieldIssue{Field: "estimatedDurationHours", Message: "duration cannot be negative"})
	}
	if req.Date.IsZero() {
		issues = append(issues, FieldIssue{Field: "date", Message: "date is required"})
	}

	if req.TimeSlot.Price.IsNegative() {
		issues = append(issues, FieldIssue{Field: "timeSlot.price", Message: "slot price cannot be negative"})
	}
	if req.TimeSlot.Multiplier.IsNegative() {
		issues = append(issues, FieldIssue{Field: "timeSlot.multiplier", Message: "slot multiplier cannot be negative"})
	}

	if req.PickupProperty.Floor < 0 {
		issues = append(issues, FieldIssue{Field: "pickupProperty.floor", Message: "floor cannot be negative"})
	}
	if req.DropoffProperty.Floor < 0 {
		issues = append(issues, FieldIssue{Field: "dropoffProperty.floor", Message: "floor cannot be negative"})
	}

	if len(issues) == 0 {
		return nil
	}
	return apperrors.New(apperrors.CodeValidation, "quote request failed validation").WithDetails(issues)
}
