package graph

import (
	"github.com/graphql-go/graphql"
	"go.uber.org/zap"

	"github.com/fastygo/taskmaster/domain"
	"github.com/fastygo/taskmaster/usecase/auth"
	"github.com/fastygo/taskmaster/usecase/task"
	"github.com/fastygo/taskmaster/usecase/taskstatus"
)

type builder struct {
	svc    Services
	types  *types
	logger *zap.Logger
}

// NewSchema builds the executable schema. Every root field lists its
// interceptors explicitly; only taskStatuses, login and createUser are public.
func NewSchema(svc Services, logger *zap.Logger) (graphql.Schema, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &builder{svc: svc, types: newTypes(), logger: logger}
	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    b.query(),
		Mutation: b.mutation(),
	})
}

func (b *builder) public(resolve graphql.FieldResolveFn) graphql.FieldResolveFn {
	return Chain(resolve, b.translateErrors)
}

func (b *builder) protected(resolve graphql.FieldResolveFn) graphql.FieldResolveFn {
	return Chain(resolve, b.translateErrors, RequireAuth)
}

func (b *builder) query() *graphql.Object {
	t := b.types
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"tasks": {
				Type: t.taskList,
				Args: graphql.FieldConfigArgument{"input": {Type: t.taskParams}},
				Resolve: b.protected(func(p graphql.ResolveParams) (interface{}, error) {
					return b.svc.Tasks.ListTasks(p.Context, viewerID(p), parseTaskParams(p.Args["input"]))
				}),
			},
			"task": {
				Type: t.task,
				Args: graphql.FieldConfigArgument{"id": {Type: graphql.NewNonNull(graphql.ID)}},
				Resolve: b.protected(func(p graphql.ResolveParams) (interface{}, error) {
					return b.svc.Tasks.GetTask(p.Context, stringArg(p.Args, "id"), viewerID(p))
				}),
			},
			"taskStatuses": {
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t.taskStatus))),
				Resolve: b.public(func(p graphql.ResolveParams) (interface{}, error) {
					statuses, err := b.svc.Statuses.ListStatuses(p.Context)
					if err != nil {
						return nil, err
					}
					return statusRefs(statuses), nil
				}),
			},
			"user": {
				Type: t.user,
				Resolve: b.protected(func(p graphql.ResolveParams) (interface{}, error) {
					return b.svc.Profile.GetUser(p.Context, viewerID(p))
				}),
			},
		},
	})
}

func (b *builder) mutation() *graphql.Object {
	t := b.types
	idArg := graphql.FieldConfigArgument{"id": {Type: graphql.NewNonNull(graphql.ID)}}

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createTask": {
				Type: t.task,
				Args: graphql.FieldConfigArgument{"input": {Type: graphql.NewNonNull(t.createTaskInput)}},
				Resolve: b.protected(func(p graphql.ResolveParams) (interface{}, error) {
					input := mapArg(p.Args, "input")
					return b.svc.Tasks.CreateTask(p.Context, viewerID(p), task.CreateInput{
						Title:       stringArg(input, "title"),
						Description: stringArg(input, "description"),
						StatusID:    stringArg(input, "status"),
					})
				}),
			},
			"updateTask": {
				Type: t.task,
				Args: graphql.FieldConfigArgument{
					"id":    {Type: graphql.NewNonNull(graphql.ID)},
					"input": {Type: graphql.NewNonNull(t.updateTaskInput)},
				},
				Resolve: b.protected(func(p graphql.ResolveParams) (interface{}, error) {
					input := mapArg(p.Args, "input")
					patch := domain.TaskPatch{
						Title:       optionalString(input, "title"),
						Description: optionalString(input, "description"),
						StatusID:    optionalString(input, "status"),
					}
					return b.svc.Tasks.UpdateTask(p.Context, stringArg(p.Args, "id"), viewerID(p), patch)
				}),
			},
			"deleteTask": {
				Type: t.task,
				Args: idArg,
				Resolve: b.protected(func(p graphql.ResolveParams) (interface{}, error) {
					return b.svc.Tasks.DeleteTask(p.Context, stringArg(p.Args, "id"), viewerID(p))
				}),
			},
			"clearTasks": {
				Type: graphql.Int,
				Resolve: b.protected(func(p graphql.ResolveParams) (interface{}, error) {
					removed, err := b.svc.Tasks.ClearTasks(p.Context, viewerID(p))
					if err != nil {
						return nil, err
					}
					return int(removed), nil
				}),
			},
			"cloneTasks": {
				Type: graphql.NewList(graphql.NewNonNull(t.task)),
				Resolve: b.protected(func(p graphql.ResolveParams) (interface{}, error) {
					clones, err := b.svc.Tasks.CloneTasks(p.Context, viewerID(p))
					if err != nil {
						return nil, err
					}
					return taskRefs(clones), nil
				}),
			},
			"createTaskStatus": {
				Type: t.taskStatus,
				Args: graphql.FieldConfigArgument{"input": {Type: graphql.NewNonNull(t.createStatusInput)}},
				Resolve: b.protected(func(p graphql.ResolveParams) (interface{}, error) {
					input := mapArg(p.Args, "input")
					return b.svc.Statuses.CreateStatus(p.Context, taskstatus.CreateInput{
						Status:    stringArg(input, "status"),
						BgColor:   stringArg(input, "bgColor"),
						TextColor: stringArg(input, "textColor"),
					})
				}),
			},
			"login": {
				Type: t.user,
				Args: graphql.FieldConfigArgument{
					"email":    {Type: graphql.NewNonNull(graphql.String)},
					"password": {Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: b.public(b.login),
			},
			"logout": {
				Type:    t.user,
				Resolve: b.protected(b.logout),
			},
			"createUser": {
				Type: t.user,
				Args: graphql.FieldConfigArgument{"input": {Type: graphql.NewNonNull(t.createUserInput)}},
				Resolve: b.public(func(p graphql.ResolveParams) (interface{}, error) {
					input := mapArg(p.Args, "input")
					return b.svc.Auth.Register(p.Context, auth.RegisterInput{
						FirstName: stringArg(input, "firstName"),
						LastName:  stringArg(input, "lastName"),
						Email:     stringArg(input, "email"),
						Password:  stringArg(input, "password"),
					})
				}),
			},
			"updateUser": {
				Type: t.user,
				Args: graphql.FieldConfigArgument{"input": {Type: graphql.NewNonNull(t.updateUserInput)}},
				Resolve: b.protected(func(p graphql.ResolveParams) (interface{}, error) {
					input := mapArg(p.Args, "input")
					patch := domain.UserPatch{
						FirstName:         optionalString(input, "firstName"),
						LastName:          optionalString(input, "lastName"),
						Email:             optionalString(input, "email"),
						ProfilePictureURL: optionalString(input, "profilePictureURL"),
					}
					return b.svc.Profile.UpdateUser(p.Context, viewerID(p), patch)
				}),
			},
			"generateUserProfilePictureURL": {
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{"filename": {Type: graphql.NewNonNull(graphql.String)}},
				Resolve: b.protected(func(p graphql.ResolveParams) (interface{}, error) {
					return b.svc.Profile.GenerateProfilePictureURL(p.Context, viewerID(p), stringArg(p.Args, "filename"))
				}),
			},
		},
	})
}

// login replaces any session the caller already holds with a fresh one.
func (b *builder) login(p graphql.ResolveParams) (interface{}, error) {
	state := StateFrom(p.Context)
	session, user, err := b.svc.Auth.Login(p.Context, stringArg(p.Args, "email"), stringArg(p.Args, "password"), state.Metadata())
	if err != nil {
		return nil, err
	}
	if previous := state.SessionID(); previous != "" {
		if err := b.svc.Auth.Logout(p.Context, previous); err != nil {
			b.logger.Warn("failed to drop previous session", zap.Error(err))
		}
	}
	state.Login(session, user)
	return user, nil
}

func (b *builder) logout(p graphql.ResolveParams) (interface{}, error) {
	state := StateFrom(p.Context)
	viewer := state.Viewer()
	if err := b.svc.Auth.Logout(p.Context, state.SessionID()); err != nil {
		return nil, err
	}
	state.Logout()
	return viewer, nil
}

func parseTaskParams(raw interface{}) task.ListParams {
	input, _ := raw.(map[string]interface{})
	params := task.ListParams{}
	params.Page, _ = input["page"].(int)
	params.Limit, _ = input["limit"].(int)
	if filter, ok := input["filter"].(map[string]interface{}); ok {
		params.Search = stringArg(filter, "search")
		params.StatusID = stringArg(filter, "status")
	}
	if sort, ok := input["sort"].(map[string]interface{}); ok {
		params.SortField, _ = sort["field"].(domain.SortField)
		params.SortDir, _ = sort["dir"].(domain.SortDirection)
	}
	return params
}

func mapArg(args map[string]interface{}, key string) map[string]interface{} {
	m, _ := args[key].(map[string]interface{})
	return m
}

func stringArg(args map[string]interface{}, key string) string {
	s, _ := args[key].(string)
	return s
}

// optionalString returns nil for absent or null keys and a pointer otherwise, including for "".
func optionalString(args map[string]interface{}, key string) *string {
	s, ok := args[key].(string)
	if !ok {
		return nil
	}
	return &s
}
