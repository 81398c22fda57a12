package handlers

import (
	"errors"
	"log"
	"time"

	"groupfit/config"
	"groupfit/database"
	"groupfit/middleware"
	"groupfit/models"
	"groupfit/observability"
	"groupfit/services"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthResponse struct {
	Token string              `json:"token"`
	User  models.UserResponse `json:"user"`
}

// Register creates a new account with the USER role
func Register(c *fiber.Ctx) error {
	var input models.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if input.Email == "" || input.Password == "" || input.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	// Check if the email is already registered
	var existing models.User
	if result := database.DB.Where("email = ?", input.Email).First(&existing); result.Error == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "User already exists",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to hash password",
		})
	}

	user := models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Role:         models.RoleUser,
	}

	if result := database.DB.Create(&user); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create user",
		})
	}

	observability.RecordUserRegistered()
	services.LogAudit(user.ID, user.Email, models.AuditActionRegister, nil, "", c.IP())

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"user": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
		},
	})
}

// Login authenticates a user and returns a JWT token
func Login(c *fiber.Ctx) error {
	var input models.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	// Find user; a missing row and a missing hash both read as bad credentials
	var user models.User
	if result := database.DB.Where("email = ?", input.Email).First(&user); result.Error != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}
	if user.PasswordHash == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	token, err := generateToken(&user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	services.LogAudit(user.ID, user.Email, models.AuditActionLogin, nil, "", c.IP())

	return c.JSON(AuthResponse{
		Token: token,
		User:  user.ToResponse(),
	})
}

// GetCurrentUser returns the currently authenticated user
func GetCurrentUser(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var user models.User
	if result := database.DB.First(&user, userID); result.Error != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	return c.JSON(user.ToResponse())
}

// DeleteAccount removes the caller and everything the caller owns.
// Children go before parents: activities, then memberships, then groups,
// then the user row itself.
func DeleteAccount(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	email := middleware.GetEmail(c)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// The caller's own activities
		if err := tx.Where("user_id = ?", userID).Delete(&models.Activity{}).Error; err != nil {
			return err
		}

		// Groups the caller created, with their remaining activities and members
		var createdGroupIDs []uint
		if err := tx.Model(&models.Group{}).Where("creator_id = ?", userID).Pluck("id", &createdGroupIDs).Error; err != nil {
			return err
		}
		if len(createdGroupIDs) > 0 {
			if err := tx.Where("group_id IN ?", createdGroupIDs).Delete(&models.Activity{}).Error; err != nil {
				return err
			}
			if err := tx.Where("group_id IN ?", createdGroupIDs).Delete(&models.GroupMember{}).Error; err != nil {
				return err
			}
		}

		// The caller's memberships in other groups
		if err := tx.Where("user_id = ?", userID).Delete(&models.GroupMember{}).Error; err != nil {
			return err
		}

		if len(createdGroupIDs) > 0 {
			if err := tx.Where("id IN ?", createdGroupIDs).Delete(&models.Group{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.Weight{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.PersonalData{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, userID).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete user",
		})
	}

	// The deleted account can't be audited after the fact; write the row
	// before responding
	if err := services.LogAuditSync(userID, email, models.AuditActionAccountDelete, nil, "", c.IP()); err != nil {
		log.Printf("Failed to audit account deletion for user %d: %v", userID, err)
	}

	return c.JSON(fiber.Map{
		"message": "User deleted successfully",
	})
}

func generateToken(user *models.User) (string, error) {
	cfg := config.GetConfig()

	claims := middleware.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(cfg.SessionDurationHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
