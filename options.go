/*
 * MinIO Cloud Storage, (C) 2020 MinIO, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package jiffy

// parserConfig holds the resolved settings a ParserOption set mutates.
// Both open questions the base specification leaves to target-language
// implementations (gating the leading '+' sign extension, and whether BOM
// detection is active) are exposed here rather than hard-coded.
type parserConfig struct {
	allowLeadingPlus bool
	detectBOM        bool
	allowVEscape     bool
}

func defaultParserConfig() parserConfig {
	return parserConfig{
		allowLeadingPlus: true,
		detectBOM:        true,
		allowVEscape:     true,
	}
}

// ParserOption configures a Parser at Init time.
type ParserOption func(*parserConfig)

// WithLeadingPlusSign toggles whether a leading '+' is accepted before the
// first digit of a number, in addition to '-'. Enabled by default.
func WithLeadingPlusSign(allow bool) ParserOption {
	return func(c *parserConfig) { c.allowLeadingPlus = allow }
}

// WithBOMDetection toggles recognition of a leading UTF-8 or UTF-16 byte
// order mark. Enabled by default.
func WithBOMDetection(allow bool) ParserOption {
	return func(c *parserConfig) { c.detectBOM = allow }
}

// WithVerticalTabEscape toggles whether the non-standard "\v" string escape
// is accepted. Enabled by default.
func WithVerticalTabEscape(allow bool) ParserOption {
	return func(c *parserConfig) { c.allowVEscape = allow }
}
