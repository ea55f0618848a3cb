package dto

// RegisterRequest HTTP注册请求
// binding只做格式校验,密码强度等业务规则在领域服务里校验
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=50" example:"张三"`
	Email    string `json:"email" binding:"required,email" example:"zhangsan@example.com"`
	Password string `json:"password" binding:"required,min=8,max=20" example:"secret123"`
	Phone    string `json:"phone" binding:"omitempty,max=20" example:"13800000000"`
}

// LoginRequest HTTP登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"zhangsan@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// RefreshTokenRequest 刷新Token请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
