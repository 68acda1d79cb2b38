package buildingservice

import "github.com/google/uuid"

// Building модель здания из BuildingService
type Building struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Address     string      `json:"address"`
	ManagerIDs  []uuid.UUID `json:"manager_ids"`
	ResidentIDs []uuid.UUID `json:"resident_ids"`
}

// IsManager проверяет, управляет ли пользователь зданием
func (b *Building) IsManager(userID uuid.UUID) bool {
	for _, id := range b.ManagerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// IsResident проверяет, проживает ли пользователь в здании
func (b *Building) IsResident(userID uuid.UUID) bool {
	for _, id := range b.ResidentIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// IsMember проверяет принадлежность пользователя к зданию
// (житель или управляющий)
func (b *Building) IsMember(userID uuid.UUID) bool {
	return b.IsResident(userID) || b.IsManager(userID)
}

// ErrorResponse модель ошибки от BuildingService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
