package services

// Point conversion constants: every 100 pesos of purchase earns one
// point, and each point is worth 2 pesos of cashback discount.
const (
	PesosPerPoint         = 100
	DiscountValuePerPoint = 2
)

// CalculatePoints converts a purchase amount in pesos to earned points.
func CalculatePoints(amountPesos int) int {
	return amountPesos / PesosPerPoint
}

// CalculateDiscount converts points to their cashback value in pesos.
func CalculateDiscount(points int) int {
	return points * DiscountValuePerPoint
}

// CalculateAmount is the inverse of CalculatePoints: the purchase amount
// that a number of points represents.
func CalculateAmount(points int) int {
	return points * PesosPerPoint
}
