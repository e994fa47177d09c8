package controllers

import (
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/topshelfent/booking-api/utils"
)

const defaultContactEmail = "info@topshelfentertainment.com"

// ComposeContact turns the contact form into the mailto link the site
// opens. No mail is sent from here; the visitor's own client does that.
func ComposeContact(c *fiber.Ctx) error {
	inquiry := new(utils.ContactInquiry)
	if err := c.BodyParser(inquiry); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.NewErrorResponse("Failed to parse request body", err))
	}
	if inquiry.Name == "" || inquiry.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.NewErrorResponse("Name and message are required", nil))
	}
	if !utils.IsValidEmail(inquiry.Email) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.NewErrorResponse("A valid email is required", nil))
	}

	to := os.Getenv("CONTACT_EMAIL")
	if to == "" {
		to = defaultContactEmail
	}

	return c.JSON(fiber.Map{
		"mailto": utils.BuildMailto(to, *inquiry),
	})
}
