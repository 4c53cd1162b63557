package recipe

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

var errBadRequest = errors.New("malformed request")

// body decodes the request body as a JSON object with the app's decoder.
// Numbers stay float64 as the attribute coercion expects.
func body(c *fiber.Ctx) (map[string]any, error) {
	var values map[string]any

	if err := c.App().Config().JSONDecoder(c.Body(), &values); err != nil {
		return nil, errors.Join(errBadRequest, err)
	}

	if values == nil {
		return nil, errors.Join(errBadRequest, errors.New("body must be a JSON object")) //nolint:err113
	}

	return values, nil
}
