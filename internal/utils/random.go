package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/classtrack-dev/classtrack/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonFirstNames = []string{
	"james", "mary", "john", "patricia", "robert", "jennifer", "michael",
	"linda", "david", "susan", "william", "jessica", "richard", "sarah",
	"joseph", "karen", "thomas", "lisa", "daniel", "nancy",
}

var commonLastNames = []string{
	"smith", "johnson", "williams", "brown", "jones", "garcia", "miller",
	"davis", "rodriguez", "martinez", "wilson", "anderson", "taylor",
	"thomas", "moore", "jackson", "martin", "lee", "thompson", "white",
}

var digits = "0123456789"

func GenerateRandomUsername() string {
	username := commonFirstNames[rand.Intn(len(commonFirstNames))] + lastNameInitial()

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func lastNameInitial() string {
	last := commonLastNames[rand.Intn(len(commonLastNames))]
	length := rand.Intn(len(last)) + 1
	return last[:length]
}

var roles = []domain.Role{
	domain.RoleTeacher,
	domain.RoleStudent,
}

func GenerateRandomRole() domain.Role {
	return roles[rand.Intn(len(roles))]
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	username := GenerateRandomUsername()
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		Role:         GenerateRandomRole(),
	}

	// about half the roster registers without an email
	if rand.Intn(2) == 0 {
		user.Email = username + "@" + emailDomainName
	}

	return user, nil
}

var subjects = []string{
	"Mathematics", "Physics", "Chemistry", "Biology", "History",
	"Geography", "Literature", "Computer Science", "Art", "Music",
}

var assignmentKinds = []string{
	"Homework", "Essay", "Lab Report", "Quiz", "Project", "Worksheet",
}

func GenerateRandomAssignment(teacherID int64) *domain.Assignment {
	subject := subjects[rand.Intn(len(subjects))]
	kind := assignmentKinds[rand.Intn(len(assignmentKinds))]

	return &domain.Assignment{
		Title:      fmt.Sprintf("%s %s %d", subject, kind, rand.Intn(20)+1),
		Subject:    subject,
		TotalScore: float64((rand.Intn(10) + 1) * 10),
		DueDate:    time.Now().Add(time.Duration(rand.Intn(28)+1) * 24 * time.Hour),
		UserID:     teacherID,
	}
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}
