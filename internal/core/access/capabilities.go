package access

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/airhost/ops/internal/core/domain"
)

type Resource string

type Action string

const (
	ResourceOrder        Resource = "order"
	ResourceImage        Resource = "image"
	ResourceChat         Resource = "chat"
	ResourceNotification Resource = "notification"
	ResourceUser         Resource = "user"
	ResourceStats        Resource = "stats"
)

const (
	ActionCreate      Action = "create"
	ActionClaim       Action = "claim"
	ActionAssign      Action = "assign"
	ActionUpload      Action = "upload"
	ActionParticipate Action = "participate"
	ActionSend        Action = "send"
	ActionManage      Action = "manage"
	ActionRead        Action = "read"
)

const capabilityModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// capabilityPolicy lists what each effective role may do regardless of
// ownership. Ownership rules live in the predicates.
var capabilityPolicy = [][]string{
	{string(domain.RoleAdmin), string(ResourceOrder), string(ActionCreate)},
	{string(domain.RoleLandlord), string(ResourceOrder), string(ActionCreate)},
	{string(domain.RoleAdmin), string(ResourceOrder), string(ActionAssign)},
	{string(domain.RoleService), string(ResourceOrder), string(ActionClaim)},

	{string(domain.RoleAdmin), string(ResourceImage), string(ActionUpload)},
	{string(domain.RoleService), string(ResourceImage), string(ActionUpload)},

	{string(domain.RoleLandlord), string(ResourceChat), string(ActionParticipate)},
	{string(domain.RoleService), string(ResourceChat), string(ActionParticipate)},

	{string(domain.RoleAdmin), string(ResourceNotification), string(ActionSend)},
	{string(domain.RoleService), string(ResourceNotification), string(ActionSend)},

	{string(domain.RoleAdmin), string(ResourceUser), string(ActionManage)},
	{string(domain.RoleAdmin), string(ResourceStats), string(ActionRead)},
}

var capabilities = mustCapabilityEnforcer()

func mustCapabilityEnforcer() *casbin.SyncedEnforcer {
	m, err := model.NewModelFromString(capabilityModel)
	if err != nil {
		panic(fmt.Sprintf("access: capability model: %v", err))
	}
	e, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		panic(fmt.Sprintf("access: capability enforcer: %v", err))
	}
	if _, err := e.AddPolicies(capabilityPolicy); err != nil {
		panic(fmt.Sprintf("access: capability policy: %v", err))
	}
	return e
}

// Allowed reports whether role may perform act on res. Enforcement errors deny.
func Allowed(role domain.Role, res Resource, act Action) bool {
	ok, err := capabilities.Enforce(string(role), string(res), string(act))
	return err == nil && ok
}
