package messenger

import "github.com/google/uuid"

// SubscriptionToken 订阅令牌
//
// 每次订阅调用生成一个，永不复用；可作为 map 键比较。
type SubscriptionToken struct {
	id uuid.UUID
}

func newToken() SubscriptionToken {
	return SubscriptionToken{id: uuid.New()}
}

// Equal 两个令牌是否来自同一次订阅
func (t SubscriptionToken) Equal(other SubscriptionToken) bool {
	return t.id == other.id
}

// IsZero 是否为零值（订阅失败时返回）
func (t SubscriptionToken) IsZero() bool {
	return t.id == uuid.Nil
}

// String 返回令牌的字符串表示
func (t SubscriptionToken) String() string {
	return t.id.String()
}
