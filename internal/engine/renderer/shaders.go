package renderer

// MaxLights is the size of the light arrays in both shaders.
const MaxLights = 8

const lightingGLSL = `
#define MAX_LIGHTS 8

uniform vec3 uLightPositions[MAX_LIGHTS];
uniform vec3 uLightColours[MAX_LIGHTS];
uniform vec3 uAttenuation[MAX_LIGHTS];
uniform int uLightCount;
uniform vec3 uCameraPos;
uniform float uShineDamper;
uniform float uReflectivity;
uniform vec3 uSkyColour;

vec3 shade(vec3 worldPos, vec3 normal, vec3 albedo) {
    vec3 unitNormal = normalize(normal);
    vec3 toCamera = normalize(uCameraPos - worldPos);
    vec3 diffuse = vec3(0.0);
    vec3 specular = vec3(0.0);

    for (int i = 0; i < uLightCount; i++) {
        vec3 toLight = uLightPositions[i] - worldPos;
        float dist = length(toLight);
        float att = uAttenuation[i].x + uAttenuation[i].y * dist + uAttenuation[i].z * dist * dist;
        vec3 unitLight = toLight / dist;

        float brightness = max(dot(unitNormal, unitLight), 0.0);
        diffuse += brightness * uLightColours[i] / att;

        vec3 reflected = reflect(-unitLight, unitNormal);
        float spec = pow(max(dot(reflected, toCamera), 0.0), max(uShineDamper, 1.0));
        specular += spec * uReflectivity * uLightColours[i] / att;
    }

    diffuse = max(diffuse, 0.2);
    return albedo * diffuse + specular;
}
`

const terrainVertexShader = `#version 410 core

layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aUV;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;

out vec3 vWorldPos;
out vec3 vNormal;
out vec2 vUV;

void main() {
    vec4 world = uModel * vec4(aPosition, 1.0);
    vWorldPos = world.xyz;
    vNormal = aNormal;
    vUV = aUV;
    gl_Position = uProjection * uView * world;
}
`

const terrainFragmentShader = `#version 410 core

in vec3 vWorldPos;
in vec3 vNormal;
in vec2 vUV;

uniform float uMinHeight;
uniform float uMaxHeight;
` + lightingGLSL + `
out vec4 FragColor;

void main() {
    float t = clamp((vWorldPos.y - uMinHeight) / max(uMaxHeight - uMinHeight, 0.001), 0.0, 1.0);
    vec3 low = vec3(0.22, 0.42, 0.18);
    vec3 high = vec3(0.62, 0.58, 0.50);
    vec3 albedo = mix(low, high, t);

    // Faint grid lines from the texture coordinates.
    vec2 cell = fract(vUV * 64.0);
    float line = step(0.98, max(cell.x, cell.y));
    albedo *= 1.0 - 0.08 * line;

    FragColor = vec4(shade(vWorldPos, vNormal, albedo), 1.0);
}
`

const entityVertexShader = `#version 410 core

layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aNormal;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;
uniform int uFakeLighting;

out vec3 vWorldPos;
out vec3 vNormal;

void main() {
    vec4 world = uModel * vec4(aPosition, 1.0);
    vWorldPos = world.xyz;
    vec3 normal = aNormal;
    if (uFakeLighting == 1) {
        normal = vec3(0.0, 1.0, 0.0);
    }
    vNormal = (uModel * vec4(normal, 0.0)).xyz;
    gl_Position = uProjection * uView * world;
}
`

const entityFragmentShader = `#version 410 core

in vec3 vWorldPos;
in vec3 vNormal;

uniform vec3 uColour;
` + lightingGLSL + `
out vec4 FragColor;

void main() {
    FragColor = vec4(shade(vWorldPos, vNormal, uColour), 1.0);
}
`
