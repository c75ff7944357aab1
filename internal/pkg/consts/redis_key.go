package consts

const (
	// RevokedTokenKey 已注销 token 签名
	RevokedTokenKey = "auth:revoked:"
)

const (
	// SearchReindexLockKey 多实例部署时只允许一个实例重建索引
	SearchReindexLockKey = "job:search_reindex:lock"
)
