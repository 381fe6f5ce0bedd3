package response

import (
	"net/http"

	"ecommerce-services/internal/domain"
)

// ReasonValidation 校验失败时 error 字段固定用这个，而不是 "Bad Request"
const ReasonValidation = "Validation Failed"

// MsgUnexpected 500 统一对外文案，原因只进日志
const MsgUnexpected = "An unexpected error occurred"

// KindStatus 集中管理 domain.Kind -> HTTP 状态码
var KindStatus = map[domain.Kind]int{
	domain.KindValidation: http.StatusBadRequest,
	domain.KindNotFound:   http.StatusNotFound,
	domain.KindDuplicate:  http.StatusConflict,
	domain.KindUnexpected: http.StatusInternalServerError,
}

func StatusOf(k domain.Kind) int {
	if s, ok := KindStatus[k]; ok {
		return s
	}
	return http.StatusInternalServerError
}
