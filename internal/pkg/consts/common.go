package consts

const (
	MimePrefixImage = "image"
)

const (
	RoleAdmin = "ADMIN"
)

// Context 键
const (
	ActorKey = "actor"
	RolesKey = "roles"
)

const (
	// PostPageSize 列表页每页条数
	PostPageSize = 10
	// SearchLimit 搜索返回上限
	SearchLimit = 50
	// ActivityLimit 操作记录默认条数
	ActivityLimit = 50
	// MaxIDLength 标识符最大长度（UUID）
	MaxIDLength = 36
)

// 后台操作类型
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// 后台操作对象
const (
	EntityPost     = "post"
	EntityCategory = "category"
)
