package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Header is the response header carrying the request's ray ID.
const Header = "X-Ray-Id"

// New creates a middleware that assigns every request a ray ID for
// log correlation. An incoming X-Ray-Id is honored so upstream
// proxies can thread their own IDs through.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(Header)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals("ray_id", rid)
		c.Set(Header, rid)
		return c.Next()
	}
}
