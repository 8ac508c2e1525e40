package models

import "github.com/alex-pricope/coop-voting-system/voting"

type PageResponse[T any] struct {
	Content       []T  `json:"content"`
	TotalPages    int  `json:"totalPages"`
	TotalElements int  `json:"totalElements"`
	Size          int  `json:"size"`
	Number        int  `json:"number"`
	First         bool `json:"first"`
	Last          bool `json:"last"`
	Empty         bool `json:"empty"`
}

// TransformPage maps every item of p with transform, keeping the page metadata.
func TransformPage[S, T any](p voting.Page[S], transform func(S) T) PageResponse[T] {
	content := make([]T, 0, len(p.Items))
	for _, item := range p.Items {
		content = append(content, transform(item))
	}
	return PageResponse[T]{
		Content:       content,
		TotalPages:    p.TotalPages,
		TotalElements: p.TotalElements,
		Size:          p.Size,
		Number:        p.Number,
		First:         p.First(),
		Last:          p.Last(),
		Empty:         p.Empty(),
	}
}
