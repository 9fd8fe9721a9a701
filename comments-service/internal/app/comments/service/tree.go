package service

import (
	"gamestore/comments-service/internal/app/comments/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BuildTree собирает дерево ответов без рекурсии, глубина не ограничена.
// Корни и ответы идут в порядке входного среза. Комментарий, чей родитель
// отсутствует во входе, становится корнем.
func BuildTree(comments []entity.Comment) []*entity.CommentNode {
	nodes := make(map[primitive.ObjectID]*entity.CommentNode, len(comments))
	for i := range comments {
		nodes[comments[i].ID] = entity.NewCommentNode(&comments[i])
	}

	children := make(map[primitive.ObjectID][]*entity.CommentNode)
	roots := make([]*entity.CommentNode, 0)
	for i := range comments {
		c := &comments[i]
		if c.ParentID != nil {
			if _, ok := nodes[*c.ParentID]; ok && *c.ParentID != c.ID {
				children[*c.ParentID] = append(children[*c.ParentID], nodes[c.ID])
				continue
			}
		}
		roots = append(roots, nodes[c.ID])
	}

	ids := make(map[*entity.CommentNode]primitive.ObjectID, len(comments))
	for id, node := range nodes {
		ids[node] = id
	}

	// обход в глубину через явный стек; visited защищает от циклов в данных
	visited := make(map[primitive.ObjectID]bool, len(comments))
	stack := make([]*entity.CommentNode, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, roots[i])
	}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		id := ids[node]
		if visited[id] {
			continue
		}
		visited[id] = true

		for _, child := range children[id] {
			if !visited[ids[child]] {
				node.Replies = append(node.Replies, child)
			}
		}
		for i := len(node.Replies) - 1; i >= 0; i-- {
			stack = append(stack, node.Replies[i])
		}
	}

	return roots
}

// descendants все потомки комментария в порядке обхода в ширину
func descendants(comments []entity.Comment, rootID primitive.ObjectID) []*entity.Comment {
	children := make(map[primitive.ObjectID][]*entity.Comment)
	for i := range comments {
		if p := comments[i].ParentID; p != nil {
			children[*p] = append(children[*p], &comments[i])
		}
	}

	result := make([]*entity.Comment, 0)
	visited := map[primitive.ObjectID]bool{rootID: true}
	queue := []primitive.ObjectID{rootID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		for _, child := range children[id] {
			if visited[child.ID] {
				continue
			}
			visited[child.ID] = true
			result = append(result, child)
			queue = append(queue, child.ID)
		}
	}
	return result
}
