package model

// GraphNode is one entity in the co-occurrence graph.
type GraphNode struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// GraphEdge links two co-occurring entities. Weight counts mention pairs
// inside the co-occurrence window.
type GraphEdge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
}

// EntityGraph is the JSON payload served by the graph endpoint: important
// entities and their co-occurrence edges, ready for client-side rendering.
type EntityGraph struct {
	VideoID string      `json:"videoId"`
	Nodes   []GraphNode `json:"nodes"`
	Edges   []GraphEdge `json:"edges"`
}
