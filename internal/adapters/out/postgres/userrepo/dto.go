// Package userrepo persists users and their rating aggregates. The rating
// update runs as a single SQL expression so concurrent reviews cannot lose
// an increment to a read-modify-write race.
package userrepo

import (
	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// UserDTO represents the database structure for persisting users.
type UserDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string
	RatingCount int
	RatingAvg   float64
}

// TableName overrides GORM's default naming convention to use "users".
func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(aggregate *user.User) UserDTO {
	return UserDTO{
		ID:          aggregate.ID().Bytes(),
		Name:        aggregate.Name(),
		RatingCount: aggregate.RatingCount(),
		RatingAvg:   aggregate.RatingAverage(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(id, dto.Name, dto.RatingCount, dto.RatingAvg)
}
