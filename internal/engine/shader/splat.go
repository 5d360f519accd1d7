package shader

// SplatVertexSource and SplatFragmentSource implement the §4.E/§4.F
// triangle-splat pipeline as GLSL, mirroring internal/engine/splat's CPU
// reference bit for bit (the corner-record layout, the min-opacity/
// backface/clip-w/perimeter/size cull chain, the edge-shrink and
// phi-scale soft-falloff math, the SH-by-texture lookup, and the
// screen-space barycentric color recombination).
//
// The vertex shader consumes one CornerRecord per invocation (3*T
// vertex-attribute-only records, no per-triangle SSBO — GL 4.1 core has no
// compute/SSBO support, so §9's texture-based SH storage is the only
// option this target supports). Every invocation of a triangle's three
// corners evaluates all three corners' colors identically (from the
// triangle-wide aCornerIndices/aColor0/1/2 attributes), and hands the
// fragment shader the shrunk edge equations plus the three corner colors
// and their half-pixel-shifted screen positions as flat varyings, so the
// fragment shader can recombine them itself instead of relying on the
// rasterizer's built-in perspective-correct interpolation.
const SplatVertexSource = `
	#version 410 core

	layout (location = 0) in vec3 aPosition;
	layout (location = 1) in vec3 aBarycentric;
	layout (location = 2) in vec3 aV0;
	layout (location = 3) in vec3 aV1;
	layout (location = 4) in vec3 aV2;
	layout (location = 5) in vec3 aOpacities;     // w0, w1, w2
	layout (location = 6) in vec3 aCornerIndices; // vertex index of corner0, corner1, corner2
	layout (location = 7) in vec3 aColor0;        // direct color fallback, corner0
	layout (location = 8) in vec3 aColor1;        // direct color fallback, corner1
	layout (location = 9) in vec3 aColor2;        // direct color fallback, corner2

	uniform mat4 uModelView;
	uniform mat4 uProjection;
	uniform vec2 uResolution;
	uniform float uSigma;
	uniform bool uHasSH;
	uniform int uSHDegree;
	uniform sampler2D uSHTable;
	uniform vec3 uCameraPos;

	out vec2 vEdgeNormal0;
	out vec2 vEdgeNormal1;
	out vec2 vEdgeNormal2;
	out float vEdgeOffset0;
	out float vEdgeOffset1;
	out float vEdgeOffset2;
	out float vM;
	out float vPhiScale;
	out float vSigma;
	flat out vec2 vP0;
	flat out vec2 vP1;
	flat out vec2 vP2;
	flat out vec3 vColor0;
	flat out vec3 vColor1;
	flat out vec3 vColor2;

	const float kStoppingInfluence = 0.01;
	const float kBackfaceThreshold = 0.001;
	const float kPerimeterThreshold = 1.0;
	const float kDistanceMin = 1.0;
	const float kDistanceMax = 1600.0;
	const float kSafeDistEps = 1e-4;

	const int kSHTableWidth = 1024;
	const int kTexelsPerVertex = 12;

	const float kSHC0 = 0.28209479177387814;
	const float kSHC1 = 0.4886025119029199;
	const float kSHC2[5] = float[5](
		1.0925484305920792,
		-1.0925484305920792,
		0.31539156525252005,
		-1.0925484305920792,
		0.5462742152960396
	);
	const float kSHC3[7] = float[7](
		-0.5900435899266435,
		2.890611442640554,
		-0.4570457994644658,
		0.3731763325901154,
		-0.4570457994644658,
		1.445305721320277,
		-0.5900435899266435
	);

	vec2 ndcToPixel(vec4 clip) {
		vec2 ndc = clip.xy / clip.w;
		return (ndc + 1.0) * uResolution * 0.5 - 0.5;
	}

	// evalSH mirrors internal/engine/splat/sh.go's EvalSH: fetch this
	// vertex's 12 packed texels (48 flat scalars, DC triple then up to 15
	// rest-coefficient triples), evaluate the real SH basis at direction
	// dir, and apply the "+0.5 DC offset, clamp >= 0" convention.
	vec3 evalSH(int vertexIndex, vec3 dir) {
		float s[48];
		for (int k = 0; k < kTexelsPerVertex; k++) {
			int texelIndex = vertexIndex * kTexelsPerVertex + k;
			ivec2 coord = ivec2(texelIndex % kSHTableWidth, texelIndex / kSHTableWidth);
			vec4 texel = texelFetch(uSHTable, coord, 0);
			s[k * 4 + 0] = texel.r;
			s[k * 4 + 1] = texel.g;
			s[k * 4 + 2] = texel.b;
			s[k * 4 + 3] = texel.a;
		}

		vec3 color = kSHC0 * vec3(s[0], s[1], s[2]);

		if (uSHDegree >= 1) {
			float x = dir.x, y = dir.y, z = dir.z;
			color += kSHC1 * (-y) * vec3(s[3], s[4], s[5])
			       + kSHC1 * z    * vec3(s[6], s[7], s[8])
			       + kSHC1 * (-x) * vec3(s[9], s[10], s[11]);

			if (uSHDegree >= 2) {
				float xx = x * x, yy = y * y, zz = z * z;
				float xy = x * y, yz = y * z, xz = x * z;
				color += kSHC2[0] * xy * vec3(s[12], s[13], s[14])
				       + kSHC2[1] * yz * vec3(s[15], s[16], s[17])
				       + kSHC2[2] * (2.0 * zz - xx - yy) * vec3(s[18], s[19], s[20])
				       + kSHC2[3] * xz * vec3(s[21], s[22], s[23])
				       + kSHC2[4] * (xx - yy) * vec3(s[24], s[25], s[26]);

				if (uSHDegree >= 3) {
					color += kSHC3[0] * y * (3.0 * xx - yy) * vec3(s[27], s[28], s[29])
					       + kSHC3[1] * xy * z * vec3(s[30], s[31], s[32])
					       + kSHC3[2] * y * (4.0 * zz - xx - yy) * vec3(s[33], s[34], s[35])
					       + kSHC3[3] * z * (2.0 * zz - 3.0 * xx - 3.0 * yy) * vec3(s[36], s[37], s[38])
					       + kSHC3[4] * x * (4.0 * zz - xx - yy) * vec3(s[39], s[40], s[41])
					       + kSHC3[5] * z * (xx - yy) * vec3(s[42], s[43], s[44])
					       + kSHC3[6] * x * (xx - 3.0 * yy) * vec3(s[45], s[46], s[47]);
				}
			}
		}

		return max(color + 0.5, vec3(0.0));
	}

	void main() {
		float w0 = aOpacities.x;
		float w1 = aOpacities.y;
		float w2 = aOpacities.z;
		float m = min(w0, min(w1, w2));
		if (m < kStoppingInfluence) {
			gl_Position = vec4(0.0, 0.0, 0.0, -1.0); // w<0: clipped away entirely
			return;
		}

		vec3 worldNormal = cross(aV1 - aV0, aV2 - aV0);
		vec3 viewNormal = normalize(mat3(uModelView) * worldNormal);
		vec3 centroidWorld = (aV0 + aV1 + aV2) / 3.0;
		vec3 centroidView = (uModelView * vec4(centroidWorld, 1.0)).xyz;
		vec3 viewDir = -normalize(centroidView);

		float c = dot(viewNormal, viewDir);
		if (c > 0.0) {
			viewNormal = -viewNormal;
			c = -c;
		}
		if (abs(c) < kBackfaceThreshold) {
			gl_Position = vec4(0.0, 0.0, 0.0, -1.0);
			return;
		}

		mat4 mvp = uProjection * uModelView;
		vec4 c0 = mvp * vec4(aV0, 1.0);
		vec4 c1 = mvp * vec4(aV1, 1.0);
		vec4 c2 = mvp * vec4(aV2, 1.0);
		if (c0.w <= 0.0 && c1.w <= 0.0 && c2.w <= 0.0) {
			gl_Position = vec4(0.0, 0.0, 0.0, -1.0);
			return;
		}

		vec2 p0 = ndcToPixel(c0);
		vec2 p1 = ndcToPixel(c1);
		vec2 p2 = ndcToPixel(c2);

		float a = distance(p1, p2);
		float b = distance(p2, p0);
		float cc = distance(p0, p1);
		float perim = a + b + cc;
		if (perim < kPerimeterThreshold) {
			gl_Position = vec4(0.0, 0.0, 0.0, -1.0);
			return;
		}
		vec2 incenter = (p0 * a + p1 * b + p2 * cc) / perim;

		float r = max(distance(p0, incenter), max(distance(p1, incenter), distance(p2, incenter)));
		if (r > kDistanceMax || r < kDistanceMin) {
			gl_Position = vec4(0.0, 0.0, 0.0, -1.0);
			return;
		}

		vec2 p[3] = vec2[3](p0, p1, p2);
		vec2 edgeNormal[3];
		float edgeOffset[3];
		float edgeD[3];
		for (int k = 0; k < 3; k++) {
			vec2 pk = p[k];
			vec2 pk1 = p[(k + 1) % 3];
			vec2 n = normalize(vec2(-(pk1 - pk).y, (pk1 - pk).x));
			float o = -dot(n, pk);
			float d = dot(n, incenter) + o;
			if (d > 0.0) {
				n = -n;
				o = -o;
				d = -d;
			}
			edgeNormal[k] = n;
			edgeOffset[k] = o;
			edgeD[k] = d;
		}

		float shrink = edgeD[0] * pow(kStoppingInfluence / m, 1.0 / uSigma);
		for (int k = 0; k < 3; k++) {
			edgeOffset[k] -= shrink;
		}
		float phiScale = 1.0 / min(edgeD[2], -kSafeDistEps);

		vEdgeNormal0 = edgeNormal[0];
		vEdgeNormal1 = edgeNormal[1];
		vEdgeNormal2 = edgeNormal[2];
		vEdgeOffset0 = edgeOffset[0];
		vEdgeOffset1 = edgeOffset[1];
		vEdgeOffset2 = edgeOffset[2];
		vM = m;
		vPhiScale = phiScale;
		vSigma = uSigma;

		// Every corner invocation of a triangle carries identical aV0/aV1/aV2
		// (I1), so p0,p1,p2 above are already the triangle's three
		// half-pixel-shifted screen positions regardless of which corner this
		// invocation is — pass them through unchanged for the fragment
		// shader's screen-space barycentric recombination (§4.F.6).
		vP0 = p0;
		vP1 = p1;
		vP2 = p2;

		if (uHasSH) {
			vec3 worldPos[3] = vec3[3](aV0, aV1, aV2);
			vColor0 = evalSH(int(aCornerIndices.x), normalize(worldPos[0] - uCameraPos));
			vColor1 = evalSH(int(aCornerIndices.y), normalize(worldPos[1] - uCameraPos));
			vColor2 = evalSH(int(aCornerIndices.z), normalize(worldPos[2] - uCameraPos));
		} else {
			vColor0 = aColor0;
			vColor1 = aColor1;
			vColor2 = aColor2;
		}

		// Barycentric selector picks this corner's own clip-space position;
		// all three corners of a triangle carry identical aV0/aV1/aV2/aOpacities (I1).
		vec4 clip = aBarycentric.x * c0 + aBarycentric.y * c1 + aBarycentric.z * c2;
		gl_Position = clip;
	}
`

// SplatFragmentSource evaluates the soft per-pixel alpha and premultiplies
// the recombined color, matching §4.F exactly. Color recombination is the
// screen-space barycentric weighting of the three flat per-corner colors
// against the flat half-pixel-shifted p0,p1,p2 (§4.F.6) — not the GPU
// rasterizer's own perspective-correct interpolation.
const SplatFragmentSource = `
	#version 410 core

	in vec2 vEdgeNormal0;
	in vec2 vEdgeNormal1;
	in vec2 vEdgeNormal2;
	in float vEdgeOffset0;
	in float vEdgeOffset1;
	in float vEdgeOffset2;
	in float vM;
	in float vPhiScale;
	in float vSigma;
	flat in vec2 vP0;
	flat in vec2 vP1;
	flat in vec2 vP2;
	flat in vec3 vColor0;
	flat in vec3 vColor1;
	flat in vec3 vColor2;

	uniform bool uDebug;

	out vec4 FragColor;

	const float kAlphaThreshold = 1.0 / 255.0;
	const float kDegenerateEps = 1e-6;

	// screenBarycentric mirrors internal/engine/splat/fragmentstage.go's
	// screenBarycentric exactly, including its fallback to uniform (1/3,1/3,1/3)
	// weighting on a near-zero denominator.
	vec3 screenBarycentric(vec2 p) {
		float denom = (vP1.y - vP2.y) * (vP0.x - vP2.x) + (vP2.x - vP1.x) * (vP0.y - vP2.y);
		if (abs(denom) < kDegenerateEps) {
			return vec3(1.0 / 3.0);
		}
		float b0 = ((vP1.y - vP2.y) * (p.x - vP2.x) + (vP2.x - vP1.x) * (p.y - vP2.y)) / denom;
		float b1 = ((vP2.y - vP0.y) * (p.x - vP2.x) + (vP0.x - vP2.x) * (p.y - vP2.y)) / denom;
		float b2 = 1.0 - b0 - b1;
		return vec3(b0, b1, b2);
	}

	void main() {
		vec2 p = gl_FragCoord.xy;
		float d0 = dot(vEdgeNormal0, p) + vEdgeOffset0;
		float d1 = dot(vEdgeNormal1, p) + vEdgeOffset1;
		float d2 = dot(vEdgeNormal2, p) + vEdgeOffset2;
		if (d0 > 0.0 || d1 > 0.0 || d2 > 0.0) {
			discard;
		}

		float maxDelta = max(d0, max(d1, d2));
		float cx = pow(max(0.0, maxDelta * vPhiScale), vSigma);
		float alpha = min(0.99, vM * cx);
		if (alpha < kAlphaThreshold) {
			discard;
		}

		if (uDebug) {
			FragColor = vec4(vec3(alpha), 1.0);
			return;
		}

		vec3 bary = screenBarycentric(p);
		vec3 color = bary.x * vColor0 + bary.y * vColor1 + bary.z * vColor2;

		// Pre-multiplied alpha, consumed by the render driver's "over" blend
		// state (GL_ONE, GL_ONE_MINUS_SRC_ALPHA) with depth write disabled.
		FragColor = vec4(color * alpha, alpha);
	}
`
