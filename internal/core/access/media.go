package access

import "github.com/airhost/ops/internal/core/domain"

// CanViewOrderMedia governs images and comments. Unlike CanViewOrder the claim
// pool grants nothing here.
func CanViewOrderMedia(role domain.Role, userID string, o *domain.Order) bool {
	switch role {
	case domain.RoleAdmin:
		return true
	case domain.RoleLandlord:
		return o.LandlordID == userID
	case domain.RoleService:
		return o.IsAssigned() && o.AssignedToID == userID
	}
	return false
}

func CanUploadImage(role domain.Role, userID string, o *domain.Order) bool {
	if !Allowed(role, ResourceImage, ActionUpload) {
		return false
	}
	return role == domain.RoleAdmin || (o.IsAssigned() && o.AssignedToID == userID)
}

func CanEditImage(role domain.Role, userID string, img *domain.Image) bool {
	return role == domain.RoleAdmin || img.UploadedByID == userID
}

func CanEditComment(role domain.Role, userID string, c *domain.Comment) bool {
	return role == domain.RoleAdmin || c.UserID == userID
}
