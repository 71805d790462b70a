package services

import (
	"errors"

	"github.com/Zalotleh/wellness-hub-sub004/config"
	"github.com/Zalotleh/wellness-hub-sub004/models"
	"github.com/Zalotleh/wellness-hub-sub004/utils"
)

func RegisterUser(email, password, firstName, lastName, timezone string) error {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	if timezone == "" {
		timezone = "UTC"
	}

	user := models.User{
		Email:     email,
		Password:  hashedPassword,
		FirstName: firstName,
		LastName:  lastName,
		Timezone:  timezone,
		Disabled:  false,
	}

	result := config.DB.Create(&user)
	return result.Error
}

func AuthenticateUser(email, password string) (string, error) {
	var user models.User
	result := config.DB.Where("email = ? AND disabled = ?", email, false).First(&user)
	if result.Error != nil {
		return "", errors.New("user not found or disabled")
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", errors.New("incorrect password")
	}

	token, err := utils.GenerateJWT(user.ID, user.Email)
	if err != nil {
		return "", err
	}

	return token, nil
}
