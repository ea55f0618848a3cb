package gormdb

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UserModel GORM用户模型
// domain/user/entity.go是领域实体,不依赖GORM,Repository负责两者转换
type UserModel struct {
	ID        uint           `gorm:"primaryKey"`
	Name      string         `gorm:"size:50;not null;comment:姓名"`
	Email     string         `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password  string         `gorm:"size:255;not null;comment:密码(bcrypt加密)"`
	Phone     string         `gorm:"size:20;comment:手机号"`
	Role      string         `gorm:"size:20;not null;default:user;index;comment:角色(user/admin)"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// BookModel GORM图书模型
// 1. 主键为UUID字符串,LegacyID是可空的旧数字编号(唯一索引允许多个NULL)
// 2. 价格使用decimal(10,2)
// 3. 物理删除:历史订单保存了书名和价格快照,不依赖图书记录
type BookModel struct {
	ID          string          `gorm:"primaryKey;size:36;comment:图书ID(UUID)"`
	LegacyID    *int64          `gorm:"uniqueIndex;comment:旧数字编号"`
	Title       string          `gorm:"index:idx_search;size:200;not null;comment:书名"`
	Author      string          `gorm:"index:idx_search;size:100;not null;comment:作者"`
	Genre       string          `gorm:"index;size:50;comment:分类"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:价格"`
	Stock       int             `gorm:"not null;default:0;comment:库存数量"`
	Description string          `gorm:"type:text;comment:图书描述"`
	ImageURL    string          `gorm:"size:500;comment:封面图片URL"`
	BestSeller  bool            `gorm:"index;default:false;comment:是否畅销"`
	CreatedAt   time.Time       `gorm:"index;comment:创建时间"`
	UpdatedAt   time.Time       `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// OrderModel GORM订单模型
// 1. 与OrderItemModel一对多,与UserModel多对一(管理员列表Preload用户信息)
// 2. 收货信息内嵌为shipping_前缀的列
// 3. 支付信息只存卡号后四位
type OrderModel struct {
	ID          string           `gorm:"primaryKey;size:36;comment:订单ID(UUID)"`
	OrderNo     string           `gorm:"uniqueIndex;size:32;not null;comment:订单号"`
	UserID      uint             `gorm:"index;not null;comment:下单用户ID"`
	User        *UserModel       `gorm:"foreignKey:UserID"`
	TotalAmount decimal.Decimal  `gorm:"type:decimal(12,2);not null;comment:订单总金额"`
	Shipping    ShippingColumns  `gorm:"embedded;embeddedPrefix:shipping_"`
	CardLast4   string           `gorm:"size:4;comment:卡号后四位"`
	Status      string           `gorm:"index;size:20;not null;default:Pending;comment:订单状态"`
	Items       []OrderItemModel `gorm:"foreignKey:OrderID"`
	CreatedAt   time.Time        `gorm:"index;comment:创建时间"`
	UpdatedAt   time.Time        `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (OrderModel) TableName() string {
	return "orders"
}

// ShippingColumns 收货信息列
type ShippingColumns struct {
	Name       string `gorm:"size:50;not null;comment:收货人"`
	Email      string `gorm:"size:100;not null;comment:收货邮箱"`
	Phone      string `gorm:"size:20;not null;comment:收货电话"`
	Address    string `gorm:"size:255;not null;comment:收货地址"`
	City       string `gorm:"size:50;not null;comment:城市"`
	PostalCode string `gorm:"size:20;not null;comment:邮编"`
}

// OrderItemModel GORM订单明细模型
// BookID不建外键,图书删除后历史明细仍然保留
type OrderItemModel struct {
	ID       uint            `gorm:"primaryKey"`
	OrderID  string          `gorm:"index;size:36;not null;comment:订单ID"`
	BookID   string          `gorm:"index;size:36;not null;comment:图书ID"`
	Title    string          `gorm:"size:200;not null;comment:下单时书名"`
	Quantity int             `gorm:"not null;comment:购买数量"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:下单时单价"`
}

// TableName 指定表名
func (OrderItemModel) TableName() string {
	return "order_items"
}
