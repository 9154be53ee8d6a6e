package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/goldencare-dev/carehome/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonFirstNames = []string{
	"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael", "Linda", "David", "Elizabeth",
	"William", "Barbara", "Richard", "Susan", "Joseph", "Jessica", "Thomas", "Sarah", "Charles", "Karen",
	"Margaret", "Dorothy", "Helen", "Ruth", "Walter", "Harold", "Arthur", "Frank", "Alice", "Edith",
}
var commonLastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Wilson", "Anderson",
	"Taylor", "Thomas", "Moore", "Martin", "Lee", "Thompson", "White", "Harris", "Clark", "Lewis",
}

func GenerateRandomFullName() string {
	first := commonFirstNames[rand.Intn(len(commonFirstNames))]
	last := commonLastNames[rand.Intn(len(commonLastNames))]
	return first + " " + last
}

var roles = []domain.Role{
	domain.RoleAdministrator,
	domain.RoleCaregiver,
	domain.RoleFamilyMember,
}

func GenerateRandomRole() domain.Role {
	return roles[rand.Intn(len(roles))]
}

var digits = "0123456789"

func GenerateUsernameFromFullName(fullName string) string {
	parts := strings.Fields(strings.ToLower(fullName))
	username := ""

	for _, part := range parts {
		length := rand.Intn(len(part)) + 1
		username += part[:length]
	}

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
		Role:         GenerateRandomRole(),
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

func GenerateRandomID(letterLength int, digitLength int) string {
	random_id := make([]rune, letterLength+digitLength)
	for i := range random_id {
		if i < letterLength {
			random_id[i] = letters[rand.Intn(len(letters))]
		} else {
			random_id[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(random_id)
}

var genders = []string{"male", "female"}

func GenerateRandomResident() *domain.Resident {
	// residents are between 65 and 100 years old
	ageDays := rand.Intn(35*365) + 65*365
	admittedDays := rand.Intn(5 * 365)

	return &domain.Resident{
		FullName:    GenerateRandomFullName(),
		DateOfBirth: time.Now().AddDate(0, 0, -ageDays),
		Gender:      genders[rand.Intn(len(genders))],
		Status:      domain.ResidentStatusActive,
		AdmittedAt:  time.Now().AddDate(0, 0, -admittedDays),
	}
}

// generate an assignment that has already ended
func GenerateRandomDoneBedAssignment(a *domain.BedAssignment) {
	start := time.Now().AddDate(0, 0, -(rand.Intn(180) + 60))
	end := start.AddDate(0, 0, rand.Intn(30)+7)
	a.Status = domain.AssignmentStatusDone
	a.AssignedAt = &start
	a.UnassignedAt = &end
}

// generate an assignment that is currently in effect
func GenerateRandomActiveBedAssignment(a *domain.BedAssignment) {
	start := time.Now().AddDate(0, 0, -(rand.Intn(60) + 1))
	a.Status = domain.AssignmentStatusActive
	a.AssignedAt = &start
}

// generate an assignment whose start date is still in the future
func GenerateRandomUpcomingBedAssignment(a *domain.BedAssignment) {
	start := time.Now().AddDate(0, 0, rand.Intn(14)+1)
	a.Status = domain.AssignmentStatusApproved
	a.AssignedAt = &start
}

func GenerateRandomBedAssignment(bedID int64, residentID int64) *domain.BedAssignment {
	a := &domain.BedAssignment{
		BedID:      bedID,
		ResidentID: &residentID,
	}

	switch rand.Intn(3) {
	case 0:
		GenerateRandomDoneBedAssignment(a)
	case 1:
		GenerateRandomActiveBedAssignment(a)
	case 2:
		GenerateRandomUpcomingBedAssignment(a)
	}

	return a
}

func GenerateRandomCarePlanAssignment(carePlanID int64, residentID int64) *domain.CarePlanAssignment {
	a := &domain.CarePlanAssignment{
		CarePlanID: carePlanID,
		ResidentID: residentID,
	}

	switch rand.Intn(3) {
	case 0:
		start := time.Now().AddDate(0, 0, -(rand.Intn(180) + 60))
		end := start.AddDate(0, rand.Intn(3)+1, 0)
		a.Status = domain.AssignmentStatusDone
		a.StartAt = &start
		a.EndAt = &end
	case 1:
		start := time.Now().AddDate(0, 0, -(rand.Intn(60) + 1))
		end := time.Now().AddDate(0, rand.Intn(6)+1, 0)
		a.Status = domain.AssignmentStatusActive
		a.StartAt = &start
		a.EndAt = &end
	case 2:
		start := time.Now().AddDate(0, 0, rand.Intn(14)+1)
		a.Status = domain.AssignmentStatusApproved
		a.StartAt = &start
	}

	return a
}
