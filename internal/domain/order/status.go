package order

import (
	"strings"
)

// Status 订单状态
// 封闭枚举,数据库存储字符串值
type Status string

const (
	StatusPending    Status = "Pending"    // 待处理
	StatusProcessing Status = "Processing" // 处理中
	StatusShipped    Status = "Shipped"    // 已发货
	StatusDelivered  Status = "Delivered"  // 已送达
	StatusCancelled  Status = "Cancelled"  // 已取消
)

// AllStatuses 全部合法状态(按流转顺序)
var AllStatuses = []Status{
	StatusPending,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

// Valid 是否为合法状态
func (s Status) Valid() bool {
	for _, v := range AllStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// Label 中文名称(日志和管理后台展示用)
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "待处理"
	case StatusProcessing:
		return "处理中"
	case StatusShipped:
		return "已发货"
	case StatusDelivered:
		return "已送达"
	case StatusCancelled:
		return "已取消"
	default:
		return "未知状态"
	}
}

// ParseStatus 解析状态字符串,忽略大小写和首尾空格
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	for _, v := range AllStatuses {
		if strings.EqualFold(string(v), s) {
			return v, nil
		}
	}
	return "", ErrInvalidStatus
}
