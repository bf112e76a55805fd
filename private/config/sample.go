// Copyright 2026 SCION Association
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"bytes"
	"io"
	"strings"

	"github.com/ringsdn/ringsdn/pkg/private/serrors"
)

const sampleIndent = "    "

// CtxMap holds values substituted into samples, e.g. the element ID under
// the ID key.
type CtxMap map[string]string

// WriteSample writes the samples of all samplers to dst, in order. A
// TableSampler gets its own [path.name] header and its sample is indented
// below it; other samplers write at the current path unchanged. Sample
// output is documentation, so write errors panic instead of being returned.
func WriteSample(dst io.Writer, path Path, ctx CtxMap, samplers ...Sampler) {
	var buf bytes.Buffer
	for _, sampler := range samplers {
		buf.Reset()
		ts, ok := sampler.(TableSampler)
		if !ok {
			sampler.Sample(&buf, path, ctx)
			WriteString(dst, buf.String())
			continue
		}
		p := path.Extend(ts.ConfigName())
		WriteString(dst, "\n["+strings.Join(p, ".")+"]")
		ts.Sample(&buf, p, ctx)
		WriteString(dst, indent(buf.String()))
	}
}

// WriteString writes s to dst and panics if that fails.
func WriteString(dst io.Writer, s string) {
	if _, err := io.WriteString(dst, s); err != nil {
		panic(serrors.Wrap("writing sample", err))
	}
}

// indent prefixes every non-empty line of s. Every line, including the
// last, ends with a newline in the result.
func indent(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimSuffix(s, "\n"), "\n") {
		if line != "" {
			b.WriteString(sampleIndent)
			b.WriteString(line)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
