package middleware

import "breezemart-backend/models"

// CanViewOrder allows admins, the order's owner, and the assigned rider.
func CanViewOrder(user *models.User, order *models.Order) bool {
	if user.Role == models.RoleAdmin {
		return true
	}
	if order.UserID == user.ID {
		return true
	}
	return user.Role == models.RoleRider && order.RiderID != "" && order.RiderID == user.ID
}

// CanRiderUpdateOrder allows a rider to touch only an order already
// assigned to them.
func CanRiderUpdateOrder(user *models.User, order *models.Order) bool {
	return order.RiderID != "" && order.RiderID == user.ID
}
