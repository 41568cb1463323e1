package render

// Iluminação direcional simples: 30% ambiente + 70% difusa.
// A cor do vértice já carrega a paleta; a normal decide flat ou smooth.
const terrainVertexShader = `
#version 330
in vec3 vertexPosition;
in vec3 vertexNormal;
in vec4 vertexColor;

uniform mat4 mvp;

out vec4 fragColor;
out vec3 fragNormal;

void main() {
    fragColor = vertexColor;
    fragNormal = vertexNormal;
    gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

const terrainFragmentShader = `
#version 330
in vec4 fragColor;
in vec3 fragNormal;

uniform vec4 colDiffuse;
uniform vec3 lightDir;
uniform float ambient;
uniform float diffuse;

out vec4 finalColor;

void main() {
    vec3 n = normalize(fragNormal);
    float lambert = max(dot(n, normalize(lightDir)), 0.0);
    float light = ambient + diffuse * lambert;

    vec4 color = fragColor * colDiffuse;
    color.rgb *= light;
    finalColor = color;
}
`
