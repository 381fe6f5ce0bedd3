package ez

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
)

var (
	validatorOnce sync.Once
	phoneRe       = regexp.MustCompile(`^[0-9]{10}$`)
)

// 金额的存储上限：decimal(19,4)，Mongo Decimal128 也装得下
const (
	moneyIntDigits  = 15
	moneyFracDigits = 4
)

var moneyCeil = decimal.New(1, moneyIntDigits)

// setupValidator 在 gin 的 validator 上注册自定义规则（只做一次）
func setupValidator() {
	validatorOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(fieldName)
		_ = v.RegisterValidation("notblank", validators.NotBlank)
		_ = v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
			return phoneRe.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("money", isMoney)
		// decimal 按符号参与比较：gt=0 即“大于 0”
		v.RegisterCustomTypeFunc(func(f reflect.Value) any {
			if d, ok := f.Interface().(decimal.Decimal); ok {
				return d.Sign()
			}
			return nil
		}, decimal.Decimal{})
	})
}

// isMoney 整数位不超过 15、小数位不超过 4。
// 注册了 CustomTypeFunc 后 fl.Field() 只剩符号，所以从父结构体取原值
func isMoney(fl validator.FieldLevel) bool {
	parent := reflect.Indirect(fl.Parent())
	if parent.Kind() != reflect.Struct {
		return false
	}
	f := reflect.Indirect(parent.FieldByName(fl.StructFieldName()))
	if !f.IsValid() {
		return true
	}
	d, ok := f.Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return d.Abs().LessThan(moneyCeil) && d.Truncate(moneyFracDigits).Equal(d)
}

// fieldName 错误里用 json / form 名，和请求体保持一致
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

type fieldMessenger interface{ FieldMessages() map[string]string }

// fieldErrors field -> message；文案来自入参类型的 FieldMessages，键为 "field.tag"
func fieldErrors(ve validator.ValidationErrors, in any) map[string]string {
	var msgs map[string]string
	if fm, ok := in.(fieldMessenger); ok {
		msgs = fm.FieldMessages()
	}
	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		if m, ok := msgs[field+"."+fe.Tag()]; ok {
			out[field] = m
			continue
		}
		out[field] = defaultMessage(fe)
	}
	return out
}

func defaultMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email"
	case "gt":
		return fe.Field() + " must be greater than " + fe.Param()
	case "gte":
		return fe.Field() + " must be at least " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}
