// Package userrepo reads the user directory the dispatch core depends on.
package userrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"

	"github.com/google/uuid"
)

type UserDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName   string    `gorm:"type:varchar(255);not null"`
	Email      string    `gorm:"type:varchar(255);index"`
	Phone      string    `gorm:"type:varchar(32);not null"`
	Role       string    `gorm:"type:varchar(16);not null;index"`
	IsVerified bool      `gorm:"not null;default:false"`
	IsActive   bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		ID:         u.ID().Bytes(),
		FullName:   u.FullName(),
		Email:      u.Email(),
		Phone:      u.Phone(),
		Role:       u.Role().String(),
		IsVerified: u.IsVerified(),
		IsActive:   u.IsActive(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	role, err := user.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}
	return user.RestoreUser(id, dto.FullName, dto.Email, dto.Phone, role, dto.IsVerified, dto.IsActive)
}
