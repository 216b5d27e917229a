package repositories

import (
	"github.com/ucqdev/cuahquick/app/models"
	"github.com/ucqdev/cuahquick/pkg/database"
	"github.com/ucqdev/cuahquick/pkg/orm"
)

// UserRepository handles database operations for User.
type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	err := orm.DB().Model(&models.User{}).Where("email = ?", email).First(&user)
	return user, err
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(id uint) (models.User, error) {
	var user models.User
	err := orm.DB().Model(&models.User{}).Where("id = ?", id).First(&user)
	return user, err
}

// Create persists a new user record. A collision on the email or
// student-ID unique indexes comes back as database.UniqueViolation.
func (r *UserRepository) Create(user *models.User) error {
	if err := orm.DB().Create(user); err != nil {
		if uv, ok := database.AsUniqueViolation(err, "user"); ok {
			return uv
		}
		return err
	}
	return nil
}
