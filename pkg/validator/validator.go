package validator

import (
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// 用 JSON 标签名作为报错里的字段名
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidators()
}

func registerCustomValidators() {
	// 标签名：1-20 个字符，不允许空白
	validate.RegisterValidation("tagname", func(fl validator.FieldLevel) bool {
		name := fl.Field().String()
		length := utf8.RuneCountInString(name)
		if length < 1 || length > 20 {
			return false
		}
		return strings.TrimSpace(name) == name && name != ""
	})
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func GetValidator() *validator.Validate {
	return validate
}
