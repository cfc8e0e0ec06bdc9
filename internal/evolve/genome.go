package evolve

import (
	"bytes"
	"fmt"
	"math/rand"
	"strings"

	"github.com/yaricom/goNEAT/v4/neat"
	"github.com/yaricom/goNEAT/v4/neat/genetics"
	neatmath "github.com/yaricom/goNEAT/v4/neat/math"
	"github.com/yaricom/goNEAT/v4/neat/network"
)

// Network shape: agent y plus the distances to the gap center and the bottom barrier
// in, one jump decision out.
const (
	Inputs  = 3
	Outputs = 1
)

// StartGenome creates the fully connected seed genome with weights in [-1, 1].
func StartGenome(id int, rng *rand.Rand) *genetics.Genome {
	trait := neat.NewTrait()
	trait.Id = 1

	nodes := make([]*network.NNode, 0, Inputs+Outputs)
	for i := 1; i <= Inputs; i++ {
		node := network.NewNNode(i, network.InputNeuron)
		node.ActivationType = neatmath.LinearActivation
		node.Trait = trait
		nodes = append(nodes, node)
	}
	for i := 1; i <= Outputs; i++ {
		node := network.NewNNode(Inputs+i, network.OutputNeuron)
		node.ActivationType = neatmath.SigmoidSteepenedActivation
		node.Trait = trait
		nodes = append(nodes, node)
	}

	genes := make([]*genetics.Gene, 0, Inputs*Outputs)
	innov := int64(1)
	for i := 0; i < Inputs; i++ {
		for j := 0; j < Outputs; j++ {
			genes = append(genes, genetics.NewGeneWithTrait(
				trait,
				rng.Float64()*2-1,
				nodes[i],
				nodes[Inputs+j],
				false,
				innov,
				0,
			))
			innov++
		}
	}

	return genetics.NewGenome(id, []*neat.Trait{trait}, nodes, genes)
}

// EncodeGenome serialises a genome in goNEAT's plain text encoding.
func EncodeGenome(g *genetics.Genome) (string, error) {
	var buf bytes.Buffer
	w, err := genetics.NewGenomeWriter(&buf, genetics.PlainGenomeEncoding)
	if err != nil {
		return "", fmt.Errorf("evolve: cannot create genome writer: %w", err)
	}
	if err := w.WriteGenome(g); err != nil {
		return "", fmt.Errorf("evolve: cannot encode genome %d: %w", g.Id, err)
	}
	return buf.String(), nil
}

// DecodeGenome parses a genome written by EncodeGenome.
func DecodeGenome(text string) (*genetics.Genome, error) {
	r, err := genetics.NewGenomeReader(strings.NewReader(text), genetics.PlainGenomeEncoding)
	if err != nil {
		return nil, fmt.Errorf("evolve: cannot create genome reader: %w", err)
	}
	g, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("evolve: cannot decode genome: %w", err)
	}
	return g, nil
}
