package serializer

import (
	"context"
	"errors"
	"testing"

	"github.com/chefkoch/chefkoch/pkg/header"
	"github.com/chefkoch/chefkoch/pkg/k8s/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func useFakeClient(t *testing.T, objects ...*corev1.ConfigMap) *fake.Clientset {
	t.Helper()
	cs := fake.NewClientset()
	for _, o := range objects {
		_, err := cs.CoreV1().ConfigMaps(o.Namespace).Create(context.Background(), o, metav1.CreateOptions{})
		require.NoError(t, err)
	}
	prev := kubeClientFunc
	kubeClientFunc = func(string) (client.Interface, error) { return cs, nil }
	t.Cleanup(func() { kubeClientFunc = prev })
	return cs
}

func TestParseConfigMapURI(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		ns      string
		cm      string
		key     string
		wantErr bool
	}{
		{name: "namespace and name", uri: "cm://lab/recipe", ns: "lab", cm: "recipe"},
		{name: "with key", uri: "cm://lab/recipe/main.yaml", ns: "lab", cm: "recipe", key: "main.yaml"},
		{name: "missing name", uri: "cm://lab", wantErr: true},
		{name: "empty namespace", uri: "cm:///recipe", wantErr: true},
		{name: "empty name", uri: "cm://lab/", wantErr: true},
		{name: "empty key", uri: "cm://lab/recipe/", wantErr: true},
		{name: "wrong scheme", uri: "file://lab/recipe", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ns, cm, key, err := parseConfigMapURI(tt.uri)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.ns, ns)
			assert.Equal(t, tt.cm, cm)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestLoad_ConfigMap(t *testing.T) {
	useFakeClient(t, &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: "recipe", Namespace: "lab"},
		Data: map[string]string{
			"README":      "ignored",
			"recipe.yaml": "name: from-cm\ncount: 7\n",
		},
	})

	doc, err := FromFileWithKubeconfig[testDoc](context.Background(), "cm://lab/recipe", "")
	require.NoError(t, err)
	assert.Equal(t, "from-cm", doc.Name)
	assert.Equal(t, 7, doc.Count)
}

func TestLoad_ConfigMapExplicitKey(t *testing.T) {
	useFakeClient(t, &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: "docs", Namespace: "lab"},
		Data: map[string]string{
			"a.json": `{"name":"a"}`,
			"b.json": `{"name":"b"}`,
		},
	})

	doc, err := FromFile[testDoc](context.Background(), "cm://lab/docs/b.json")
	require.NoError(t, err)
	assert.Equal(t, "b", doc.Name)

	_, err = Load(context.Background(), "cm://lab/docs/c.json", "")
	assert.Error(t, err)
}

func TestLoad_ConfigMapErrors(t *testing.T) {
	useFakeClient(t, &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: "plain", Namespace: "lab"},
		Data:       map[string]string{"notes": "text"},
	})

	_, err := Load(context.Background(), "cm://lab/plain", "")
	assert.Error(t, err)

	_, err = Load(context.Background(), "cm://lab/absent", "")
	assert.Error(t, err)

	_, err = Load(context.Background(), "cm://lab", "")
	assert.Error(t, err)
}

func TestLoad_ConfigMapClientError(t *testing.T) {
	prev := kubeClientFunc
	kubeClientFunc = func(string) (client.Interface, error) { return nil, errors.New("no cluster") }
	t.Cleanup(func() { kubeClientFunc = prev })

	_, err := Load(context.Background(), "cm://lab/recipe", "")
	assert.Error(t, err)
}

func TestConfigMapWriter_Serialize(t *testing.T) {
	cs := useFakeClient(t)

	doc := struct {
		header.Header `json:",inline" yaml:",inline"`
		Status        string `json:"status"`
	}{Status: "pass"}
	doc.Init(header.KindCheckResult, header.APIVersion, "v1.2.3")

	w := NewConfigMapWriter("lab", "result", FormatJSON)
	require.NoError(t, w.Serialize(context.Background(), &doc))
	require.NoError(t, w.Close())

	cm, err := cs.CoreV1().ConfigMaps("lab").Get(context.Background(), "result", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "json", cm.Data["format"])
	assert.Contains(t, cm.Data["checkresult.json"], `"status": "pass"`)
	assert.Equal(t, "v1.2.3", cm.Labels["app.kubernetes.io/version"])
	assert.Equal(t, "checkresult", cm.Labels["app.kubernetes.io/component"])
}
