package ai

import (
	"context"
	"fmt"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	ort "github.com/yalue/onnxruntime_go"
)

// onnxBatchTokens caps the padded token count per inference batch so long
// transcripts don't blow up memory.
const onnxBatchTokens = 8192

// ONNXEmbedder runs a sentence-transformer ONNX model locally. It produces
// the [CLS] token embedding per input, the usual pooling for BERT-style
// retrieval models.
type ONNXEmbedder struct {
	tok     *tokenizer.Tokenizer
	session *ort.DynamicAdvancedSession
}

// NewONNXEmbedder loads the tokenizer and model and initializes the ONNX
// runtime environment. libPath points at the onnxruntime shared library.
func NewONNXEmbedder(modelPath, tokenizerPath, libPath string) (*ONNXEmbedder, error) {
	tok, err := pretrained.FromFile(tokenizerPath)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer: %w", err)
	}

	if libPath != "" {
		ort.SetSharedLibraryPath(libPath)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("init onnx environment: %w", err)
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("session options: %w", err)
	}
	defer opts.Destroy()

	if err := opts.SetGraphOptimizationLevel(ort.GraphOptimizationLevelEnableAll); err != nil {
		return nil, fmt.Errorf("graph optimization: %w", err)
	}
	if err := opts.SetIntraOpNumThreads(0); err != nil {
		return nil, fmt.Errorf("thread count: %w", err)
	}

	session, err := ort.NewDynamicAdvancedSession(
		modelPath,
		[]string{"input_ids", "attention_mask", "token_type_ids"},
		[]string{"last_hidden_state"},
		opts,
	)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &ONNXEmbedder{tok: tok, session: session}, nil
}

func (e *ONNXEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	all := make([][]float32, 0, len(texts))
	i := 0
	for i < len(texts) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Grow the batch until the padded token budget would overflow.
		batch := []string{texts[i]}
		maxSeq := approxTokens(texts[i])
		i++
		for i < len(texts) {
			seq := max(maxSeq, approxTokens(texts[i]))
			if (len(batch)+1)*seq > onnxBatchTokens {
				break
			}
			batch = append(batch, texts[i])
			maxSeq = seq
			i++
		}

		out, err := e.embedBatch(batch)
		if err != nil {
			return nil, err
		}
		all = append(all, out...)
	}
	return all, nil
}

func (e *ONNXEmbedder) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	out, err := e.Embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no embedding produced for query")
	}
	return out[0], nil
}

func (e *ONNXEmbedder) embedBatch(texts []string) ([][]float32, error) {
	inputs := make([]tokenizer.EncodeInput, len(texts))
	for i, t := range texts {
		inputs[i] = tokenizer.NewSingleEncodeInput(tokenizer.NewInputSequence(t))
	}

	encodings, err := e.tok.EncodeBatch(inputs, true)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}

	maxLen := 0
	for _, enc := range encodings {
		if l := len(enc.GetIds()); l > maxLen {
			maxLen = l
		}
	}

	batchSize := len(encodings)
	inputIDs := make([]int64, batchSize*maxLen)
	attentionMask := make([]int64, batchSize*maxLen)
	tokenTypeIDs := make([]int64, batchSize*maxLen)

	for i, enc := range encodings {
		ids := enc.GetIds()
		mask := enc.GetAttentionMask()
		offset := i * maxLen
		for j := 0; j < len(ids); j++ {
			inputIDs[offset+j] = int64(ids[j])
			attentionMask[offset+j] = int64(mask[j])
		}
	}

	shape := ort.NewShape(int64(batchSize), int64(maxLen))
	idsTensor, err := ort.NewTensor(shape, inputIDs)
	if err != nil {
		return nil, fmt.Errorf("input_ids tensor: %w", err)
	}
	defer idsTensor.Destroy()

	maskTensor, err := ort.NewTensor(shape, attentionMask)
	if err != nil {
		return nil, fmt.Errorf("attention_mask tensor: %w", err)
	}
	defer maskTensor.Destroy()

	typeTensor, err := ort.NewTensor(shape, tokenTypeIDs)
	if err != nil {
		return nil, fmt.Errorf("token_type_ids tensor: %w", err)
	}
	defer typeTensor.Destroy()

	outputs := make([]ort.Value, 1)
	if err := e.session.Run([]ort.Value{idsTensor, maskTensor, typeTensor}, outputs); err != nil {
		return nil, fmt.Errorf("inference: %w", err)
	}
	defer outputs[0].Destroy()

	outTensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unexpected output tensor type")
	}

	outShape := outTensor.GetShape()
	rows, seqLen, hidden := outShape[0], outShape[1], outShape[2]
	data := outTensor.GetData()

	// Copy out before Destroy; the tensor owns the backing memory.
	embeddings := make([][]float32, rows)
	for r := int64(0); r < rows; r++ {
		start := r * seqLen * hidden
		embeddings[r] = make([]float32, hidden)
		copy(embeddings[r], data[start:start+hidden])
	}
	return embeddings, nil
}

func (e *ONNXEmbedder) Close() error {
	if e.session != nil {
		e.session.Destroy()
	}
	ort.DestroyEnvironment()
	return nil
}

// approxTokens is a cheap upper-bound token estimate used only for batch
// packing; real lengths come from the tokenizer.
func approxTokens(text string) int {
	return len(text)/3 + 2
}
