package basehdl

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"proposal_hub/internal/common"
	"proposal_hub/internal/global"
)

// ParseRequestBody parse và validate dữ liệu từ request body.
// Sử dụng json.Decoder với UseNumber() để xử lý chính xác các số.
//
// Parameters:
// - c: Fiber context
// - input: Con trỏ tới struct sẽ chứa dữ liệu được parse
//
// Returns:
// - error: Lỗi nếu có trong quá trình parse hoặc validate
func ParseRequestBody(c fiber.Ctx, input interface{}) error {
	body := c.Body()
	reader := bytes.NewReader(body)
	decoder := json.NewDecoder(reader)
	decoder.UseNumber()
	if err := decoder.Decode(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
	}

	return ValidateInput(input)
}

// ValidateInput validate struct theo các tag validate đã đăng ký
func ValidateInput(input interface{}) error {
	if err := global.Validate.Struct(input); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
			first := validationErrors[0]
			return common.NewError(
				common.ErrCodeValidationInput,
				fmt.Sprintf("Trường %s không hợp lệ (quy tắc: %s)", first.Field(), first.Tag()),
				common.StatusBadRequest,
				err,
			)
		}
		return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err)
	}
	return nil
}

// ParseObjectIDParam lấy và parse một URI param thành ObjectID
func ParseObjectIDParam(c fiber.Ctx, name string) (primitive.ObjectID, error) {
	raw := c.Params(name)
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Tham số %s không phải ObjectID hợp lệ", name),
			common.StatusBadRequest,
			err,
		)
	}
	return id, nil
}

// GetActorID lấy ObjectID của người dùng đã xác thực từ context
func GetActorID(c fiber.Ctx) (primitive.ObjectID, error) {
	raw := c.Locals("user_id")
	if raw == nil {
		return primitive.NilObjectID, common.ErrTokenMissing
	}
	id, err := primitive.ObjectIDFromHex(raw.(string))
	if err != nil {
		return primitive.NilObjectID, common.ErrTokenInvalid
	}
	return id, nil
}
