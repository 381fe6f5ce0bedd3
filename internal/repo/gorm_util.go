package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"ecommerce-services/internal/domain"
)

// translateWriteErr 唯一约束冲突 → domain.ErrDuplicateKey
func translateWriteErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isDupKey(err) {
		return domain.ErrDuplicateKey
	}
	return err
}

func isDupKey(err error) bool {
	// 驱动未开启 TranslateError 时的兜底
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}

// likeContains 生成 %q% 模式，转义 LIKE 通配符
func likeContains(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(q)) + "%"
}
