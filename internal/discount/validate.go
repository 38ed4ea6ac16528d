package discount

import "parking-discount/internal/models"

// FilterValid отбрасывает применения с количеством меньше единицы, сохраняя порядок.
func FilterValid(apps []models.CouponApplication) []models.CouponApplication {
	out := make([]models.CouponApplication, 0, len(apps))
	for _, app := range apps {
		if app.IsValid() {
			out = append(out, app)
		}
	}
	return out
}
