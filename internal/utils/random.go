package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/parishops/sacristy/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonFirstNames = []string{
	"Anne", "Brendan", "Clare", "Declan", "Eilis", "Fiona", "Gerard", "Helen",
	"Ian", "Joan", "Kevin", "Laura", "Martin", "Nora", "Oliver", "Patricia",
	"Robert", "Sinead", "Thomas", "Veronica",
}

var commonSurnames = []string{
	"Byrne", "Doyle", "Nolan", "Walsh", "Keane", "Murphy", "Kelly", "Ryan",
	"Brennan", "Fitzgerald", "Collins", "Flynn", "Donnelly", "Healy", "Quinn",
}

func GenerateRandomFullName() string {
	return commonFirstNames[rand.Intn(len(commonFirstNames))] + " " + commonSurnames[rand.Intn(len(commonSurnames))]
}

var digits = "0123456789"

func GenerateUsernameFromFullName(fullName string) string {
	username := strings.ToLower(strings.ReplaceAll(fullName, " ", "."))

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomFullName()
	username := GenerateUsernameFromFullName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         domain.RoleStaff,
		IsActive:     true,
	}

	return user, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}
