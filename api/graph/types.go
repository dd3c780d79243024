package graph

import (
	"github.com/graphql-go/graphql"

	"github.com/fastygo/taskmaster/domain"
)

type types struct {
	user       *graphql.Object
	taskStatus *graphql.Object
	task       *graphql.Object
	pagination *graphql.Object
	taskList   *graphql.Object

	taskParams        *graphql.InputObject
	createTaskInput   *graphql.InputObject
	updateTaskInput   *graphql.InputObject
	createStatusInput *graphql.InputObject
	createUserInput   *graphql.InputObject
	updateUserInput   *graphql.InputObject
}

func newTypes() *types {
	t := &types{}

	t.user = graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":        {Type: graphql.NewNonNull(graphql.ID), Resolve: userField(func(u *domain.User) interface{} { return u.ID })},
			"firstName": {Type: graphql.NewNonNull(graphql.String), Resolve: userField(func(u *domain.User) interface{} { return u.FirstName })},
			"lastName":  {Type: graphql.NewNonNull(graphql.String), Resolve: userField(func(u *domain.User) interface{} { return u.LastName })},
			"email":     {Type: graphql.NewNonNull(graphql.String), Resolve: userField(func(u *domain.User) interface{} { return u.Email })},
			"profilePictureURL": {Type: graphql.String, Resolve: userField(func(u *domain.User) interface{} {
				if u.ProfilePictureURL == "" {
					return nil
				}
				return u.ProfilePictureURL
			})},
			"createdAt": {Type: graphql.NewNonNull(graphql.DateTime), Resolve: userField(func(u *domain.User) interface{} { return u.CreatedAt })},
			"updatedAt": {Type: graphql.NewNonNull(graphql.DateTime), Resolve: userField(func(u *domain.User) interface{} { return u.UpdatedAt })},
		},
	})

	t.taskStatus = graphql.NewObject(graphql.ObjectConfig{
		Name: "TaskStatus",
		Fields: graphql.Fields{
			"id":        {Type: graphql.NewNonNull(graphql.ID), Resolve: statusField(func(s *domain.TaskStatus) interface{} { return s.ID })},
			"status":    {Type: graphql.NewNonNull(graphql.String), Resolve: statusField(func(s *domain.TaskStatus) interface{} { return s.Status })},
			"bgColor":   {Type: graphql.NewNonNull(graphql.String), Resolve: statusField(func(s *domain.TaskStatus) interface{} { return s.BgColor })},
			"textColor": {Type: graphql.NewNonNull(graphql.String), Resolve: statusField(func(s *domain.TaskStatus) interface{} { return s.TextColor })},
		},
	})

	t.task = graphql.NewObject(graphql.ObjectConfig{
		Name: "Task",
		Fields: graphql.Fields{
			"id":          {Type: graphql.NewNonNull(graphql.ID), Resolve: taskField(func(task *domain.Task) interface{} { return task.ID })},
			"title":       {Type: graphql.NewNonNull(graphql.String), Resolve: taskField(func(task *domain.Task) interface{} { return task.Title })},
			"description": {Type: graphql.NewNonNull(graphql.String), Resolve: taskField(func(task *domain.Task) interface{} { return task.Description })},
			"status":      {Type: graphql.NewNonNull(graphql.ID), Resolve: taskField(func(task *domain.Task) interface{} { return task.StatusID })},
			"taskStatus": {Type: t.taskStatus, Resolve: taskField(func(task *domain.Task) interface{} {
				if task.Status == nil {
					return nil
				}
				return task.Status
			})},
			"userId": {Type: graphql.NewNonNull(graphql.ID), Resolve: taskField(func(task *domain.Task) interface{} { return task.UserID })},
			"user": {Type: t.user, Resolve: taskField(func(task *domain.Task) interface{} {
				if task.User == nil {
					return nil
				}
				return task.User
			})},
			"createdAt": {Type: graphql.NewNonNull(graphql.DateTime), Resolve: taskField(func(task *domain.Task) interface{} { return task.CreatedAt })},
			"updatedAt": {Type: graphql.NewNonNull(graphql.DateTime), Resolve: taskField(func(task *domain.Task) interface{} { return task.UpdatedAt })},
		},
	})

	t.pagination = graphql.NewObject(graphql.ObjectConfig{
		Name: "Pagination",
		Fields: graphql.Fields{
			"currentPage": {Type: graphql.NewNonNull(graphql.Int), Resolve: pageField(func(p *domain.Pagination) interface{} { return p.CurrentPage })},
			"nextPage":    {Type: graphql.Int, Resolve: pageField(func(p *domain.Pagination) interface{} { return optionalInt(p.NextPage) })},
			"prevPage":    {Type: graphql.Int, Resolve: pageField(func(p *domain.Pagination) interface{} { return optionalInt(p.PrevPage) })},
			"firstPage":   {Type: graphql.NewNonNull(graphql.Int), Resolve: pageField(func(p *domain.Pagination) interface{} { return p.FirstPage })},
			"lastPage":    {Type: graphql.NewNonNull(graphql.Int), Resolve: pageField(func(p *domain.Pagination) interface{} { return p.LastPage })},
			"total":       {Type: graphql.NewNonNull(graphql.Int), Resolve: pageField(func(p *domain.Pagination) interface{} { return int(p.Total) })},
		},
	})

	metadata := graphql.NewObject(graphql.ObjectConfig{
		Name: "TaskListMetadata",
		Fields: graphql.Fields{
			"pagination": {
				Type: graphql.NewNonNull(t.pagination),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					page, ok := p.Source.(*domain.TaskPage)
					if !ok || page == nil {
						return nil, nil
					}
					return &page.Pagination, nil
				},
			},
		},
	})

	t.taskList = graphql.NewObject(graphql.ObjectConfig{
		Name: "TaskList",
		Fields: graphql.Fields{
			"result": {
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t.task))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					page, ok := p.Source.(*domain.TaskPage)
					if !ok || page == nil {
						return []*domain.Task{}, nil
					}
					return taskRefs(page.Tasks), nil
				},
			},
			"metadata": {
				Type: graphql.NewNonNull(metadata),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source, nil
				},
			},
		},
	})

	sortField := graphql.NewEnum(graphql.EnumConfig{
		Name: "TaskSortField",
		Values: graphql.EnumValueConfigMap{
			"createdAt": {Value: domain.SortByCreatedAt},
			"updatedAt": {Value: domain.SortByUpdatedAt},
			"title":     {Value: domain.SortByTitle},
		},
	})
	sortDir := graphql.NewEnum(graphql.EnumConfig{
		Name: "SortDirection",
		Values: graphql.EnumValueConfigMap{
			"asc":  {Value: domain.SortAsc},
			"desc": {Value: domain.SortDesc},
		},
	})

	t.taskParams = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "TaskParams",
		Fields: graphql.InputObjectConfigFieldMap{
			"page":  {Type: graphql.Int},
			"limit": {Type: graphql.Int},
			"filter": {Type: graphql.NewInputObject(graphql.InputObjectConfig{
				Name: "TaskFilter",
				Fields: graphql.InputObjectConfigFieldMap{
					"search": {Type: graphql.String},
					"status": {Type: graphql.ID},
				},
			})},
			"sort": {Type: graphql.NewInputObject(graphql.InputObjectConfig{
				Name: "TaskSort",
				Fields: graphql.InputObjectConfigFieldMap{
					"field": {Type: sortField},
					"dir":   {Type: sortDir},
				},
			})},
		},
	})

	t.createTaskInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateTaskInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":       {Type: graphql.NewNonNull(graphql.String)},
			"description": {Type: graphql.NewNonNull(graphql.String)},
			"status":      {Type: graphql.NewNonNull(graphql.ID)},
		},
	})
	t.updateTaskInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateTaskInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":       {Type: graphql.String},
			"description": {Type: graphql.String},
			"status":      {Type: graphql.ID},
		},
	})
	t.createStatusInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateTaskStatusInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"status":    {Type: graphql.NewNonNull(graphql.String)},
			"bgColor":   {Type: graphql.NewNonNull(graphql.String)},
			"textColor": {Type: graphql.NewNonNull(graphql.String)},
		},
	})
	t.createUserInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateUserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"firstName": {Type: graphql.NewNonNull(graphql.String)},
			"lastName":  {Type: graphql.NewNonNull(graphql.String)},
			"email":     {Type: graphql.NewNonNull(graphql.String)},
			"password":  {Type: graphql.NewNonNull(graphql.String)},
		},
	})
	t.updateUserInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateUserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"firstName":         {Type: graphql.String},
			"lastName":          {Type: graphql.String},
			"email":             {Type: graphql.String},
			"profilePictureURL": {Type: graphql.String},
		},
	})

	return t
}

func userField(get func(*domain.User) interface{}) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		if u, ok := p.Source.(*domain.User); ok && u != nil {
			return get(u), nil
		}
		return nil, nil
	}
}

func statusField(get func(*domain.TaskStatus) interface{}) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		if s, ok := p.Source.(*domain.TaskStatus); ok && s != nil {
			return get(s), nil
		}
		return nil, nil
	}
}

func taskField(get func(*domain.Task) interface{}) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		if t, ok := p.Source.(*domain.Task); ok && t != nil {
			return get(t), nil
		}
		return nil, nil
	}
}

func pageField(get func(*domain.Pagination) interface{}) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		if page, ok := p.Source.(*domain.Pagination); ok && page != nil {
			return get(page), nil
		}
		return nil, nil
	}
}

func optionalInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func taskRefs(tasks []domain.Task) []*domain.Task {
	refs := make([]*domain.Task, len(tasks))
	for i := range tasks {
		refs[i] = &tasks[i]
	}
	return refs
}

func statusRefs(statuses []domain.TaskStatus) []*domain.TaskStatus {
	refs := make([]*domain.TaskStatus, len(statuses))
	for i := range statuses {
		refs[i] = &statuses[i]
	}
	return refs
}
