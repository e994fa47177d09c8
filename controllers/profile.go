package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/topshelfent/booking-api/models"
	"github.com/topshelfent/booking-api/utils"
)

// ProfileController manages the DJ profiles shown on the team page.
type ProfileController struct {
	db *gorm.DB
}

func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{db: db}
}

// GetTeam is the public DJ team listing.
func (pc *ProfileController) GetTeam(c *fiber.Ctx) error {
	var users []models.User
	if err := pc.db.Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.NewErrorResponse("Failed to fetch team", err))
	}

	team := make([]fiber.Map, 0, len(users))
	for _, u := range users {
		team = append(team, fiber.Map{
			"id":         u.ID,
			"name":       u.Name,
			"bio":        u.Bio,
			"avatar_url": u.AvatarURL,
		})
	}
	return c.JSON(team)
}

// UpdateProfile updates the authenticated DJ's display name and bio.
func (pc *ProfileController) UpdateProfile(c *fiber.Ctx) error {
	input := new(struct {
		Name string `json:"name"`
		Bio  string `json:"bio"`
	})
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.NewErrorResponse("Failed to parse request body", err))
	}

	var user models.User
	if err := pc.db.First(&user, c.Locals("userID").(uint)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.NewErrorResponse("User not found", err))
	}

	updates := map[string]interface{}{}
	if input.Name != "" {
		updates["name"] = input.Name
	}
	if input.Bio != "" {
		updates["bio"] = input.Bio
	}
	if len(updates) > 0 {
		if err := pc.db.Model(&user).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.NewErrorResponse("Failed to update profile", err))
		}
	}

	user.Password = ""
	return c.JSON(user)
}

// UploadAvatar stores a profile photo on Cloudinary and saves the
// returned URL.
func (pc *ProfileController) UploadAvatar(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.NewErrorResponse("Avatar file is required", err))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.NewErrorResponse("Failed to read avatar file", err))
	}
	defer file.Close()

	publicID := fmt.Sprintf("%d_%d", userID, time.Now().Unix())
	secureURL, err := utils.UploadToCloudinary(c.UserContext(), file, publicID, "dj_profiles")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.NewErrorResponse("Failed to upload avatar", err))
	}

	if err := pc.db.Model(&models.User{}).Where("id = ?", userID).Update("avatar_url", secureURL).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.NewErrorResponse("Failed to save avatar", err))
	}

	return c.JSON(fiber.Map{"avatar_url": secureURL})
}
