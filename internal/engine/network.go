package engine

import (
	"sort"
	"sync"
)

// Connection is a caller-supplied observation of an entity-to-entity link.
// Read-only to the engine.
type Connection struct {
	SourceEntity   string  `json:"source_entity"`
	TargetEntity   string  `json:"target_entity"`
	ConnectionType string  `json:"connection_type"`
	Strength       float64 `json:"strength"`
}

// SuspiciousEdge is a scored connection.
type SuspiciousEdge struct {
	Connection
	SuspiciousScore float64 `json:"suspicious_score"`
}

// EntitySeverityIndex is a precomputed entity → severity lookup used for
// cross-component signal fusion: entities already flagged by high-severity
// content analyses boost the suspicion of their connections.
type EntitySeverityIndex map[string]Severity

// ClusterResult groups entities into connected components over the
// above-threshold edge set. Entities touched only by weaker edges appear in
// Nodes but in no cluster.
type ClusterResult struct {
	Nodes    []string   `json:"nodes"`
	Clusters [][]string `json:"clusters"`
}

// DefaultClusterThreshold gates which edges may merge entities into a
// cluster. Below-threshold edges are still scored and visualized.
const DefaultClusterThreshold = 5.0

// Cross-signal boosts applied when either endpoint appears in the severity
// index.
const (
	criticalSeverityBoost = 2.5
	highSeverityBoost     = 1.5
)

// defaultBaseRisk maps a connection type to its static base-risk weight.
// A shared bank account is far stronger evidence than being mentioned in the
// same post.
var defaultBaseRisk = map[string]float64{
	"shared_bank_account": 9.0,
	"financial":           8.0,
	"financial_link":      8.0,
	"ownership":           7.5,
	"promotional_link":    6.0,
	"referral_link":       6.0,
	"advertising_link":    5.5,
	"communication":       5.0,
	"content_sharing":     5.0,
	"mentioned_together":  3.0,
}

// fallbackBaseRisk applies to connection types the table does not know.
const fallbackBaseRisk = 4.0

// NetworkAnalyzer scores entity connections and clusters the resulting graph.
// It holds only read-only tables and is safe for concurrent use.
type NetworkAnalyzer struct {
	baseRisk  map[string]float64
	threshold float64
}

// NewNetworkAnalyzer creates an analyzer with the default base-risk table and
// cluster threshold.
func NewNetworkAnalyzer() *NetworkAnalyzer {
	return &NetworkAnalyzer{baseRisk: defaultBaseRisk, threshold: DefaultClusterThreshold}
}

// SetClusterThreshold overrides the suspicion score an edge needs to merge
// entities into a cluster.
func (n *NetworkAnalyzer) SetClusterThreshold(threshold float64) {
	n.threshold = threshold
}

// ClusterThreshold reports the configured threshold.
func (n *NetworkAnalyzer) ClusterThreshold() float64 {
	return n.threshold
}

// BaseRisk returns the static base-risk weight for a connection type.
func (n *NetworkAnalyzer) BaseRisk(connectionType string) float64 {
	if risk, ok := n.baseRisk[connectionType]; ok {
		return risk
	}
	return fallbackBaseRisk
}

// BuildGraph computes a suspicion score per connection. Edge scoring is
// independent per edge and fans out across goroutines; the result preserves
// input order. A nil severity index disables the cross-signal boost.
func (n *NetworkAnalyzer) BuildGraph(connections []Connection, severities EntitySeverityIndex) []SuspiciousEdge {
	edges := make([]SuspiciousEdge, len(connections))

	var wg sync.WaitGroup
	for i := range connections {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			edges[i] = n.scoreEdge(connections[i], severities)
		}(i)
	}
	// All edges must be scored before the caller can cluster.
	wg.Wait()

	return edges
}

func (n *NetworkAnalyzer) scoreEdge(conn Connection, severities EntitySeverityIndex) SuspiciousEdge {
	score := n.BaseRisk(conn.ConnectionType)*conn.Strength + crossSignalBoost(conn, severities)
	if score < 0 {
		score = 0
	}
	if score > 10 {
		score = 10
	}
	return SuspiciousEdge{Connection: conn, SuspiciousScore: score}
}

func crossSignalBoost(conn Connection, severities EntitySeverityIndex) float64 {
	boost := severityBoost(severities[conn.SourceEntity])
	if b := severityBoost(severities[conn.TargetEntity]); b > boost {
		boost = b
	}
	return boost
}

func severityBoost(severity Severity) float64 {
	switch severity {
	case SeverityCritical:
		return criticalSeverityBoost
	case SeverityHigh:
		return highSeverityBoost
	default:
		return 0
	}
}

// Cluster groups entities into connected components over edges whose score
// meets the threshold. Output is deterministic: nodes sorted lexically,
// cluster members sorted lexically, clusters ordered by their first member.
func (n *NetworkAnalyzer) Cluster(edges []SuspiciousEdge) ClusterResult {
	nodes := make(map[string]struct{})
	uf := newUnionFind()

	for _, edge := range edges {
		nodes[edge.SourceEntity] = struct{}{}
		nodes[edge.TargetEntity] = struct{}{}
		if edge.SuspiciousScore >= n.threshold {
			uf.union(edge.SourceEntity, edge.TargetEntity)
		}
	}

	result := ClusterResult{
		Nodes:    make([]string, 0, len(nodes)),
		Clusters: make([][]string, 0),
	}
	for node := range nodes {
		result.Nodes = append(result.Nodes, node)
	}
	sort.Strings(result.Nodes)

	components := make(map[string][]string)
	for entity := range uf.parent {
		root := uf.find(entity)
		components[root] = append(components[root], entity)
	}
	for _, members := range components {
		sort.Strings(members)
		result.Clusters = append(result.Clusters, members)
	}
	sort.Slice(result.Clusters, func(i, j int) bool {
		return result.Clusters[i][0] < result.Clusters[j][0]
	})

	return result
}

// unionFind tracks connected components over entity identifiers. Only
// entities touched by a qualifying edge are registered.
type unionFind struct {
	parent map[string]string
}

func newUnionFind() *unionFind {
	return &unionFind{parent: make(map[string]string)}
}

func (u *unionFind) find(entity string) string {
	root, ok := u.parent[entity]
	if !ok {
		u.parent[entity] = entity
		return entity
	}
	if root == entity {
		return entity
	}
	top := u.find(root)
	u.parent[entity] = top
	return top
}

// union merges two components. The lexically smaller root wins, which keeps
// cluster assignment stable across runs.
func (u *unionFind) union(a, b string) {
	rootA, rootB := u.find(a), u.find(b)
	if rootA == rootB {
		return
	}
	if rootB < rootA {
		rootA, rootB = rootB, rootA
	}
	u.parent[rootB] = rootA
}
